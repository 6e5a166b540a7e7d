package dsny

import (
	"fmt"
	"strings"
	"time"

	"dsny-backend/internal/models"

	"github.com/google/uuid"
)

// Policy constants for generated bin tasks.
const (
	BinTaskDuration   = 10 * time.Minute
	BinTaskSkillLevel = models.SkillBasic
	BinTaskCategory   = models.TaskCategorySanitation
)

// reminderNamespace seeds deterministic reminder ids.
var reminderNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:dsny-backend:reminders"))

// Generator materializes tasks and reminders from the registry and resolver.
// Every method is a pure function of its inputs and the static configuration.
type Generator struct {
	registry *Registry
	resolver *Resolver
	calendar DayProvider
}

func NewGenerator(registry *Registry, resolver *Resolver, calendar DayProvider) *Generator {
	return &Generator{registry: registry, resolver: resolver, calendar: calendar}
}

// RetrievalTaskID is stable for a (building, day) pair.
func RetrievalTaskID(buildingID string, day models.CollectionDay) string {
	return fmt.Sprintf("bin_retrieval_%s_%s", buildingID, day.Key())
}

// SetOutTaskID is keyed by the collection day the set-out prepares for.
func SetOutTaskID(buildingID string, collectionDay models.CollectionDay) string {
	return fmt.Sprintf("bin_setout_%s_%s", buildingID, collectionDay.Key())
}

// ReminderID derives a UUID from the building, action and collection day.
func ReminderID(buildingID string, action models.ReminderAction, collectionDay models.CollectionDay) string {
	name := strings.Join([]string{buildingID, string(action), collectionDay.Key()}, "|")
	return uuid.NewSHA1(reminderNamespace, []byte(name)).String()
}

// GetBinRetrievalTasks emits one task per building collected on day that
// workerID alone is accountable for. Ambiguous days yield no task.
func (g *Generator) GetBinRetrievalTasks(workerID string, day models.CollectionDay) []models.OperationTask {
	tasks := make([]models.OperationTask, 0)
	for _, s := range g.registry.GetBuildingsForBinRetrieval(day) {
		if w, ok := g.resolver.ResponsibleWorker(s.BuildingID, day); !ok || w != workerID {
			continue
		}
		tasks = append(tasks, retrievalTask(s, workerID, day))
	}
	return tasks
}

// GetBinSetOutTasks emits one task per building collected tomorrow. The
// worker accountable for the collection day also sets the bins out.
func (g *Generator) GetBinSetOutTasks(workerID string, day models.CollectionDay) []models.OperationTask {
	collection := day.NextDay()
	tasks := make([]models.OperationTask, 0)
	for _, s := range g.registry.GetBuildingsForBinSetOut(day) {
		if w, ok := g.resolver.ResponsibleWorker(s.BuildingID, collection); !ok || w != workerID {
			continue
		}
		tasks = append(tasks, setOutTask(s, workerID, collection))
	}
	return tasks
}

// GetBinSetOutReminders emits a reminder dated day for every building
// collected tomorrow.
func (g *Generator) GetBinSetOutReminders(day models.CollectionDay) []models.DSNYReminder {
	collection := day.NextDay()
	buildings := g.registry.GetBuildingsForBinSetOut(day)
	reminders := make([]models.DSNYReminder, 0, len(buildings))
	for _, s := range buildings {
		reminders = append(reminders, models.DSNYReminder{
			ID:            ReminderID(s.BuildingID, models.ActionSetOut, collection),
			BuildingID:    s.BuildingID,
			BuildingName:  s.BuildingName,
			Action:        models.ActionSetOut,
			Day:           day,
			ScheduledTime: s.SetOutTime,
			CollectionDay: collection,
			Instructions:  setOutInstructions(s, collection),
		})
	}
	return reminders
}

// GetBinRetrievalReminders emits a reminder for every building collected on day.
func (g *Generator) GetBinRetrievalReminders(day models.CollectionDay) []models.DSNYReminder {
	buildings := g.registry.GetBuildingsForBinRetrieval(day)
	reminders := make([]models.DSNYReminder, 0, len(buildings))
	for _, s := range buildings {
		reminders = append(reminders, models.DSNYReminder{
			ID:            ReminderID(s.BuildingID, models.ActionRetrieve, day),
			BuildingID:    s.BuildingID,
			BuildingName:  s.BuildingName,
			Action:        models.ActionRetrieve,
			Day:           day,
			ScheduledTime: s.RetrievalTime,
			CollectionDay: day,
			Instructions:  retrievalInstructions(s, day),
		})
	}
	return reminders
}

// GetTodaysBinTasks returns today's retrieval tasks for every worker on the
// roster. Workers with nothing to do map to an empty list.
func (g *Generator) GetTodaysBinTasks() map[string][]models.OperationTask {
	day := g.calendar.Today()
	out := make(map[string][]models.OperationTask)
	for _, w := range g.resolver.Workers() {
		out[w.ID] = g.GetBinRetrievalTasks(w.ID, day)
	}
	return out
}

// GetDailyTasks returns retrieval then set-out tasks per roster worker for day.
func (g *Generator) GetDailyTasks(day models.CollectionDay) map[string][]models.OperationTask {
	out := make(map[string][]models.OperationTask)
	for _, w := range g.resolver.Workers() {
		tasks := g.GetBinRetrievalTasks(w.ID, day)
		tasks = append(tasks, g.GetBinSetOutTasks(w.ID, day)...)
		out[w.ID] = tasks
	}
	return out
}

// GetWorkerWeek returns the worker's retrieval and set-out tasks for each day.
func (g *Generator) GetWorkerWeek(workerID string) map[models.CollectionDay][]models.OperationTask {
	week := make(map[models.CollectionDay][]models.OperationTask, len(models.AllCollectionDays))
	for _, day := range models.AllCollectionDays {
		tasks := g.GetBinRetrievalTasks(workerID, day)
		week[day] = append(tasks, g.GetBinSetOutTasks(workerID, day)...)
	}
	return week
}

func retrievalTask(s models.BuildingCollectionSchedule, workerID string, day models.CollectionDay) models.OperationTask {
	return models.OperationTask{
		ID:                RetrievalTaskID(s.BuildingID, day),
		Name:              "DSNY Bin Retrieval - " + s.BuildingName,
		Kind:              models.TaskKindBinRetrieval,
		Category:          BinTaskCategory,
		Location:          s.BuildingName,
		BuildingID:        s.BuildingID,
		WorkerID:          workerID,
		CollectionDay:     day,
		ScheduledTime:     s.RetrievalTime,
		EstimatedDuration: BinTaskDuration,
		SkillLevel:        BinTaskSkillLevel,
		Instructions:      retrievalInstructions(s, day),
	}
}

func setOutTask(s models.BuildingCollectionSchedule, workerID string, collection models.CollectionDay) models.OperationTask {
	return models.OperationTask{
		ID:                SetOutTaskID(s.BuildingID, collection),
		Name:              "DSNY Bin Set-Out - " + s.BuildingName,
		Kind:              models.TaskKindBinSetOut,
		Category:          BinTaskCategory,
		Location:          s.BuildingName,
		BuildingID:        s.BuildingID,
		WorkerID:          workerID,
		CollectionDay:     collection,
		ScheduledTime:     s.SetOutTime,
		EstimatedDuration: BinTaskDuration,
		SkillLevel:        BinTaskSkillLevel,
		Instructions:      setOutInstructions(s, collection),
	}
}

func setOutInstructions(s models.BuildingCollectionSchedule, collection models.CollectionDay) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Set out bins from %s at the curb after %s for %s collection.",
		locationOrDefault(s.BinLocation), s.SetOutTime.Label(), collection)
	writeStreams(&b, s.StreamsOn(collection))
	writeSpecial(&b, s.SpecialInstructions)
	return b.String()
}

func retrievalInstructions(s models.BuildingCollectionSchedule, day models.CollectionDay) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bring bins back to %s by %s after %s collection.",
		locationOrDefault(s.BinLocation), s.RetrievalTime.Label(), day)
	writeStreams(&b, s.StreamsOn(day))
	writeSpecial(&b, s.SpecialInstructions)
	return b.String()
}

func writeStreams(b *strings.Builder, streams []models.WasteStreamGuidance) {
	if len(streams) == 0 {
		return
	}
	parts := make([]string, 0, len(streams))
	for _, g := range streams {
		p := fmt.Sprintf("%s (%s)", g.WasteType.Label(), g.ContainerType)
		if g.SpecialInstructions != "" {
			p += ": " + g.SpecialInstructions
		}
		parts = append(parts, p)
	}
	b.WriteString(" Streams: ")
	b.WriteString(strings.Join(parts, "; "))
	b.WriteString(".")
}

func writeSpecial(b *strings.Builder, special string) {
	if special == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(special)
}

func locationOrDefault(loc string) string {
	if loc == "" {
		return "the bin storage area"
	}
	return loc
}
