package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dsny-backend/internal/dsny"
	"dsny-backend/internal/middleware"
	"dsny-backend/internal/models"
	"dsny-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// BuildingDetail is a registry schedule plus its compliance classification
// and derived set-out plan.
type BuildingDetail struct {
	models.BuildingCollectionSchedule
	Category      models.ComplianceCategory `json:"category"`
	CategoryLabel string                    `json:"category_label"`
	SetOutDays    []models.CollectionDay    `json:"set_out_days"`
}

// queryDay reads ?day=, defaulting to today from the engine's calendar.
func queryDay(r *http.Request, engine *dsny.Engine) (models.CollectionDay, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("day"))
	if raw == "" {
		return engine.Today(), nil
	}
	return models.ParseCollectionDay(raw)
}

// queryDate reads ?date=YYYY-MM-DD in the calendar's location, defaulting to today.
func queryDate(r *http.Request, engine *dsny.Engine) (time.Time, error) {
	cal := engine.Calendar()
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return dsny.ServiceDate(cal.Now()), nil
	}
	loc := cal.Location()
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", raw)
	}
	return d, nil
}

func taskResponses(tasks []models.OperationTask) []models.TaskResponse {
	out := make([]models.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, tasks[i].ToTaskResponse())
	}
	return out
}

// ListBuildings returns every bin-managed building's schedule, sorted by name.
func ListBuildings(engine *dsny.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.RespondSuccess(w, engine.Registry.GetBinManagementBuildings())
	}
}

// GetBuilding returns one bin-managed building.
func GetBuilding(engine *dsny.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		s, err := engine.Registry.Schedule(id)
		if errors.Is(err, dsny.ErrUnknownBuilding) {
			utils.RespondError(w, http.StatusNotFound, "Building is not bin-managed or unknown")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
			return
		}

		category, _ := engine.Units.Category(id)
		setOut := make([]models.CollectionDay, len(s.CollectionDays))
		for i, d := range s.CollectionDays {
			setOut[i] = d.PreviousDay()
		}
		utils.RespondSuccess(w, BuildingDetail{
			BuildingCollectionSchedule: s,
			Category:                   category,
			CategoryLabel:              category.Label(),
			SetOutDays:                 setOut,
		})
	}
}

// GetBuildingCollection answers whether a building is collected on ?day=.
func GetBuildingCollection(engine *dsny.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, err := queryDay(r, engine)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		id := chi.URLParam(r, "id")
		utils.RespondSuccess(w, map[string]interface{}{
			"building_id":    id,
			"day":            day,
			"has_collection": engine.Registry.HasCollection(id, day),
		})
	}
}

// GetSetOutBuildings lists buildings whose bins go out on the evening of ?day=.
func GetSetOutBuildings(engine *dsny.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, err := queryDay(r, engine)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondSuccess(w, engine.Registry.GetBuildingsForBinSetOut(day))
	}
}

// GetRetrievalBuildings lists buildings whose bins come back on ?day=.
func GetRetrievalBuildings(engine *dsny.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, err := queryDay(r, engine)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondSuccess(w, engine.Registry.GetBuildingsForBinRetrieval(day))
	}
}

func GetPlan(engine *dsny.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.RespondSuccess(w, engine.Registry.GetBinManagementPlan())
	}
}

func GetSetOutReminders(engine *dsny.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, err := queryDay(r, engine)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondSuccess(w, engine.Generator.GetBinSetOutReminders(day))
	}
}

func GetRetrievalReminders(engine *dsny.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, err := queryDay(r, engine)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondSuccess(w, engine.Generator.GetBinRetrievalReminders(day))
	}
}

// canViewWorker allows admins and the worker themself.
func canViewWorker(r *http.Request, workerID string) bool {
	claims, ok := middleware.GetUserFromContext(r)
	if !ok {
		return false
	}
	return claims.IsAdmin() || claims.WorkerID == workerID
}

// GetWorkerTasks returns a worker's retrieval then set-out tasks for ?day=.
func GetWorkerTasks(engine *dsny.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workerID := chi.URLParam(r, "id")
		if !canViewWorker(r, workerID) {
			utils.RespondError(w, http.StatusForbidden, "Forbidden")
			return
		}
		day, err := queryDay(r, engine)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		tasks := engine.Generator.GetBinRetrievalTasks(workerID, day)
		tasks = append(tasks, engine.Generator.GetBinSetOutTasks(workerID, day)...)
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"day":     day,
			"data":    taskResponses(tasks),
		})
	}
}

// GetWorkerWeek returns the worker's tasks keyed by lowercase day name.
func GetWorkerWeek(engine *dsny.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workerID := chi.URLParam(r, "id")
		if !canViewWorker(r, workerID) {
			utils.RespondError(w, http.StatusForbidden, "Forbidden")
			return
		}

		week := engine.Generator.GetWorkerWeek(workerID)
		out := make(map[string][]models.TaskResponse, len(week))
		for day, tasks := range week {
			out[day.Key()] = taskResponses(tasks)
		}
		utils.RespondSuccess(w, out)
	}
}

// GetCompliance is the operator audit over every building with a unit count.
func GetCompliance(engine *dsny.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.RespondSuccess(w, engine.Units.AnalyzeAllBuildings())
	}
}

func GetIssues(engine *dsny.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.RespondSuccess(w, engine.Issues())
	}
}

// GetTodaysTasks returns today's retrieval tasks for every roster worker.
func GetTodaysTasks(engine *dsny.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		today := engine.Generator.GetTodaysBinTasks()
		out := make(map[string][]models.TaskResponse, len(today))
		for id, tasks := range today {
			out[id] = taskResponses(tasks)
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"day":     engine.Today(),
			"data":    out,
		})
	}
}
