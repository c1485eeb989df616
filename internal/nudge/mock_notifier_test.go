package nudge

type mockNotifier struct {
	called bool
	habits []AtRisk
	date   string
	err    error
}

func (m *mockNotifier) SendNudge(habits []AtRisk, date string) error {
	m.called = true
	m.habits = habits
	m.date = date
	return m.err
}
