package models

import "time"

// ReminderAction is the bin-management action a reminder asks for.
type ReminderAction string

const (
	ActionSetOut   ReminderAction = "set_out"
	ActionRetrieve ReminderAction = "retrieve"
)

// DSNYReminder is generated on demand and never owned by the engine.
// Day is the day the action happens; CollectionDay is the pickup it relates to.
type DSNYReminder struct {
	ID            string         `json:"id"`
	BuildingID    string         `json:"building_id"`
	BuildingName  string         `json:"building_name"`
	Action        ReminderAction `json:"action"`
	Day           CollectionDay  `json:"day"`
	ScheduledTime TimeOfDay      `json:"scheduled_time"`
	CollectionDay CollectionDay  `json:"collection_day"`
	Instructions  string         `json:"instructions"`
}

// At resolves the reminder's time of day onto date in loc.
func (r DSNYReminder) At(date time.Time, loc *time.Location) time.Time {
	return r.ScheduledTime.On(date, loc)
}
