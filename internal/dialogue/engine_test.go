package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeExtractor struct {
	results map[string]Extraction
	err     error
}

func (f *fakeExtractor) Extract(_ context.Context, message string) (Extraction, error) {
	if f.err != nil {
		return Extraction{}, f.err
	}
	if ext, ok := f.results[message]; ok {
		return ext, nil
	}
	return Extraction{Action: ActionInvalid}, nil
}

type fakeExecutor struct {
	err    error
	action Action
	fields map[Field]string
	calls  int
}

func (f *fakeExecutor) Execute(_ context.Context, action Action, fields map[Field]string) (string, error) {
	f.calls++
	f.action = action
	f.fields = fields
	if f.err != nil {
		return "", f.err
	}
	return "done: " + string(action), nil
}

type fakeRetriever struct{ err error }

func (f *fakeRetriever) Answer(_ context.Context, question string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "answer to " + question, nil
}

type fakeInvalid struct{}

func (fakeInvalid) Respond(_ context.Context, _ string) (string, error) {
	return "I can only help with appointments and medical questions.", nil
}

func newTestEngine(extractor *fakeExtractor, executor *fakeExecutor) *Engine {
	return NewEngine(extractor, executor, &fakeRetriever{}, fakeInvalid{}, "")
}

func TestTurnCollectsAndDispatches(t *testing.T) {
	opening := "Book an appointment for Ahmet Yilmaz"
	ex := &fakeExtractor{results: map[string]Extraction{
		opening: {
			Action: ActionAddAppointment,
			Fields: map[Field]string{FieldName: "Ahmet", FieldSurname: "Yilmaz"},
		},
	}}
	exec := &fakeExecutor{}
	e := newTestEngine(ex, exec)
	ctx := context.Background()

	reply, err := e.Turn(ctx, "s1", opening)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(reply, "personal_id") {
		t.Fatalf("first prompt = %q, want personal_id prompt", reply)
	}

	steps := []struct {
		input      string
		nextPrompt string
	}{
		{"123456", "date"},
		{"15-06-2025", "time"},
		{"10:30", "description"},
	}
	for _, step := range steps {
		reply, err = e.Turn(ctx, "s1", step.input)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(reply, step.nextPrompt) {
			t.Fatalf("after %q got %q, want prompt for %s", step.input, reply, step.nextPrompt)
		}
	}

	reply, err = e.Turn(ctx, "s1", "knee pain")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "done: add_appointment" {
		t.Fatalf("dispatch reply = %q", reply)
	}
	if exec.calls != 1 || exec.action != ActionAddAppointment {
		t.Fatalf("executor calls = %d action = %s", exec.calls, exec.action)
	}
	want := map[Field]string{
		FieldName: "Ahmet", FieldSurname: "Yilmaz", FieldPersonalID: "123456",
		FieldDate: "15-06-2025", FieldTime: "10:30", FieldDescription: "knee pain",
	}
	for k, v := range want {
		if exec.fields[k] != v {
			t.Errorf("dispatched %s = %q, want %q", k, exec.fields[k], v)
		}
	}

	s := e.Sessions().Get("s1")
	if s.Phase != PhaseAwaitingIntent || len(s.Fields) != 0 {
		t.Fatalf("session not reset after dispatch: %+v", s)
	}
}

func TestTurnInvalidInputDoesNotAdvance(t *testing.T) {
	opening := "delete my appointment"
	ex := &fakeExtractor{results: map[string]Extraction{
		opening: {Action: ActionDeleteAppointment},
	}}
	exec := &fakeExecutor{}
	e := newTestEngine(ex, exec)
	ctx := context.Background()

	if _, err := e.Turn(ctx, "s1", opening); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		reply, err := e.Turn(ctx, "s1", "not a number")
		if err != nil {
			t.Fatal(err)
		}
		if reply != "Wrong input. Please try again appointment_id:" {
			t.Fatalf("re-prompt = %q", reply)
		}
	}
	if exec.calls != 0 {
		t.Fatal("executor invoked before validation passed")
	}

	reply, err := e.Turn(ctx, "s1", "7")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "done: delete_appointment" {
		t.Fatalf("dispatch reply = %q", reply)
	}
}

func TestTurnDispatchesImmediatelyWhenComplete(t *testing.T) {
	opening := "show all appointments"
	ex := &fakeExtractor{results: map[string]Extraction{
		opening: {Action: ActionGetAllAppointments},
	}}
	exec := &fakeExecutor{}
	e := newTestEngine(ex, exec)

	reply, err := e.Turn(context.Background(), "s1", opening)
	if err != nil {
		t.Fatal(err)
	}
	if reply != "done: get_all_appointments" || exec.calls != 1 {
		t.Fatalf("reply = %q calls = %d", reply, exec.calls)
	}
}

func TestTurnUpdateWithDateSkipsTime(t *testing.T) {
	opening := "move appointment 3 to 15-06-2025"
	ex := &fakeExtractor{results: map[string]Extraction{
		opening: {
			Action: ActionUpdateAppointment,
			Fields: map[Field]string{FieldAppointmentID: "3", FieldDate: "15-06-2025"},
		},
	}}
	exec := &fakeExecutor{}
	e := newTestEngine(ex, exec)

	reply, err := e.Turn(context.Background(), "s1", opening)
	if err != nil {
		t.Fatal(err)
	}
	if reply != "done: update_appointment" {
		t.Fatalf("reply = %q, want immediate dispatch", reply)
	}
	if exec.fields[FieldTime] != "" {
		t.Fatalf("time = %q, want absent", exec.fields[FieldTime])
	}
}

func TestTurnMedicalQuestion(t *testing.T) {
	q := "what are the symptoms of flu?"
	ex := &fakeExtractor{results: map[string]Extraction{
		q: {Action: ActionMedicalQuestion},
	}}
	e := newTestEngine(ex, &fakeExecutor{})

	reply, err := e.Turn(context.Background(), "s1", q)
	if err != nil {
		t.Fatal(err)
	}
	if reply != "answer to "+q {
		t.Fatalf("reply = %q", reply)
	}
	if s := e.Sessions().Get("s1"); s.Phase != PhaseAwaitingIntent {
		t.Fatal("session left mid-flight after retrieval")
	}
}

func TestTurnInvalidIntent(t *testing.T) {
	e := newTestEngine(&fakeExtractor{}, &fakeExecutor{})
	reply, err := e.Turn(context.Background(), "s1", "asdfgh")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "I can only help with appointments and medical questions." {
		t.Fatalf("reply = %q", reply)
	}
}

func TestTurnSessionsInterleave(t *testing.T) {
	bookA := "book for Ahmet"
	bookB := "book for Maria"
	ex := &fakeExtractor{results: map[string]Extraction{
		bookA: {Action: ActionDeleteAppointment},
		bookB: {Action: ActionGetAppointmentByID},
	}}
	exec := &fakeExecutor{}
	e := newTestEngine(ex, exec)
	ctx := context.Background()

	e.Turn(ctx, "a", bookA)
	e.Turn(ctx, "b", bookB)

	replyA, _ := e.Turn(ctx, "a", "11")
	if replyA != "done: delete_appointment" {
		t.Fatalf("session a reply = %q", replyA)
	}
	replyB, _ := e.Turn(ctx, "b", "22")
	if replyB != "done: get_appointment_by_id" {
		t.Fatalf("session b reply = %q", replyB)
	}
}

func TestTurnCollaboratorFailureResets(t *testing.T) {
	opening := "show all appointments"
	ex := &fakeExtractor{results: map[string]Extraction{
		opening: {Action: ActionGetAllAppointments},
	}}
	exec := &fakeExecutor{err: errors.New("db down")}
	e := newTestEngine(ex, exec)
	ctx := context.Background()

	reply, err := e.Turn(ctx, "s1", opening)
	if err != nil {
		t.Fatal(err)
	}
	if reply == "" || strings.HasPrefix(reply, "done:") {
		t.Fatalf("failure reply = %q", reply)
	}
	if s := e.Sessions().Get("s1"); s.Phase != PhaseAwaitingIntent {
		t.Fatal("session stuck after executor failure")
	}

	// The next message starts fresh.
	exec.err = nil
	reply, err = e.Turn(ctx, "s1", opening)
	if err != nil {
		t.Fatal(err)
	}
	if reply != "done: get_all_appointments" {
		t.Fatalf("recovery reply = %q", reply)
	}
}

func TestTurnExtractorFailureResets(t *testing.T) {
	ex := &fakeExtractor{err: errors.New("llm timeout")}
	e := newTestEngine(ex, &fakeExecutor{})

	reply, err := e.Turn(context.Background(), "s1", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if reply == "" {
		t.Fatal("empty failure reply")
	}
	if s := e.Sessions().Get("s1"); s.Phase != PhaseAwaitingIntent {
		t.Fatal("session stuck after extractor failure")
	}
}

func TestTurnDropsEmptyExtractedFields(t *testing.T) {
	opening := "get appointment"
	ex := &fakeExtractor{results: map[string]Extraction{
		opening: {
			Action: ActionGetAppointmentByID,
			Fields: map[Field]string{FieldAppointmentID: ""},
		},
	}}
	e := newTestEngine(ex, &fakeExecutor{})

	reply, err := e.Turn(context.Background(), "s1", opening)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(reply, "appointment_id") {
		t.Fatalf("reply = %q, want prompt for appointment_id", reply)
	}
}

func TestRoute(t *testing.T) {
	tests := []struct {
		action Action
		fields map[Field]string
		want   Outcome
	}{
		{ActionAddAppointment, nil, OutcomeFillSlots},
		{ActionGetAllAppointments, nil, OutcomeDispatch},
		{ActionDeleteAppointment, map[Field]string{FieldAppointmentID: "5"}, OutcomeDispatch},
		{ActionMedicalQuestion, nil, OutcomeRetrieve},
		{ActionInvalid, nil, OutcomeRespondInvalid},
		{ActionNone, nil, OutcomeRespondInvalid},
		{Action("bogus"), nil, OutcomeRespondInvalid},
	}
	for _, tt := range tests {
		if got := Route(tt.action, tt.fields); got != tt.want {
			t.Errorf("Route(%s) = %v, want %v", tt.action, got, tt.want)
		}
	}
}

func TestActionIsBooking(t *testing.T) {
	for _, a := range []Action{
		ActionAddAppointment, ActionGetAppointmentByID, ActionUpdateAppointment,
		ActionDeleteAppointment, ActionGetAllAppointments,
	} {
		if !a.IsBooking() {
			t.Errorf("%s.IsBooking() = false", a)
		}
	}
	for _, a := range []Action{ActionMedicalQuestion, ActionInvalid, ActionNone} {
		if a.IsBooking() {
			t.Errorf("%s.IsBooking() = true", a)
		}
	}
}

func TestParseAction(t *testing.T) {
	if got := ParseAction("add_appointment"); got != ActionAddAppointment {
		t.Fatalf("ParseAction = %s", got)
	}
	if got := ParseAction("drop tables"); got != ActionInvalid {
		t.Fatalf("ParseAction(unknown) = %s", got)
	}
}
