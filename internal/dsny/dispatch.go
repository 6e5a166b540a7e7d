package dsny

import (
	"time"

	"dsny-backend/internal/models"
)

// DispatchPlan is everything the engine produces for one concrete service
// date, ready to hand to a downstream store.
type DispatchPlan struct {
	ServiceDate time.Time
	Location    *time.Location
	Day         models.CollectionDay
	Tasks       []models.OperationTask
	Reminders   []models.DSNYReminder
	IssueCount  int
}

// PlanFor generates every worker's tasks and both reminder kinds for the
// calendar date of at, resolved in the calendar's location.
func (e *Engine) PlanFor(at time.Time) DispatchPlan {
	loc := e.calendar.Location()
	if loc == nil {
		loc = time.Local
	}
	date := ServiceDate(at.In(loc))
	day := models.DayFromWeekday(date.Weekday())

	daily := e.Generator.GetDailyTasks(day)
	tasks := make([]models.OperationTask, 0)
	for _, w := range e.Resolver.Workers() {
		tasks = append(tasks, daily[w.ID]...)
	}

	reminders := e.Generator.GetBinRetrievalReminders(day)
	reminders = append(reminders, e.Generator.GetBinSetOutReminders(day)...)

	return DispatchPlan{
		ServiceDate: date,
		Location:    loc,
		Day:         day,
		Tasks:       tasks,
		Reminders:   reminders,
		IssueCount:  len(e.issues),
	}
}

// PlanToday is PlanFor at the calendar's current instant.
func (e *Engine) PlanToday() DispatchPlan {
	return e.PlanFor(e.calendar.Now())
}

// TaskTime places a task's time of day on the plan's service date.
func (p DispatchPlan) TaskTime(t models.OperationTask) time.Time {
	return t.ScheduledTime.On(p.ServiceDate, p.Location)
}

// ReminderTime places a reminder's time of day on the plan's service date.
func (p DispatchPlan) ReminderTime(r models.DSNYReminder) time.Time {
	return r.At(p.ServiceDate, p.Location)
}
