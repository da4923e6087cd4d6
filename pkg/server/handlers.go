package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/deskrota/internal/config"
	"github.com/jakechorley/deskrota/pkg/core/scheduler"
	"github.com/jakechorley/deskrota/pkg/core/services"
	"github.com/jakechorley/deskrota/pkg/db"
)

// unprocessable are the scheduler errors caused by the submitted roster or windows
var unprocessable = []error{
	scheduler.ErrEmptyRoster,
	scheduler.ErrNoCoverage,
	scheduler.ErrInvalidInterval,
	scheduler.ErrEmptyName,
	scheduler.ErrDuplicateName,
	scheduler.ErrOverlappingWindows,
	scheduler.ErrInvalidPolicy,
	scheduler.ErrUnknownStrategy,
	scheduler.ErrMissingShuffler,
}

func statusFor(err error) int {
	if errors.Is(err, db.ErrNotFound) {
		return http.StatusNotFound
	}
	for _, target := range unprocessable {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// bind decodes and validates a JSON body, writing a 400 on failure. An empty
// body is accepted when allowEmpty is set.
func (h *Handler) bind(c *gin.Context, target any, allowEmpty bool) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return false
		}
	}
	if err := config.Validator().Struct(target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func (h *Handler) dateParam(c *gin.Context) (time.Time, bool) {
	date, err := services.ParseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return time.Time{}, false
	}
	return date, true
}

// Health reports that the server is up
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Plan returns the slice plan for a submitted roster and windows
func (h *Handler) Plan(c *gin.Context) {
	var req PlanRequest
	if !h.bind(c, &req, false) {
		return
	}

	roster, windows, policy, err := h.planInput(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := scheduler.ValidateWindows(windows); err != nil {
		h.fail(c, err)
		return
	}
	if err := scheduler.ValidatePolicy(policy); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": toPlanResponse(scheduler.PlanWindows(roster, windows, policy))})
}

// Schedule runs the scheduler on a submitted day without touching the store
func (h *Handler) Schedule(c *gin.Context) {
	var req ScheduleRequest
	if !h.bind(c, &req, false) {
		return
	}

	roster, windows, policy, err := h.planInput(req.PlanRequest)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := scheduler.Input{
		Roster:   roster,
		Windows:  windows,
		Policy:   policy,
		Strategy: scheduler.Strategy(h.Cfg.Strategy),
		Ordering: scheduler.Ordering(h.Cfg.Ordering),
		Rotation: scheduler.RotationState(req.Rotation),
		Throttle: req.Throttle.ToThrottle(),
	}
	if req.Strategy != "" {
		input.Strategy = scheduler.Strategy(req.Strategy)
	}
	if req.Ordering != "" {
		input.Ordering = scheduler.Ordering(req.Ordering)
	}

	var seed *uint64
	if input.Ordering == scheduler.OrderingRandom {
		value := uint64(time.Now().UnixNano())
		if req.Seed != nil {
			value = *req.Seed
		}
		seed = &value
		input.Shuffler = services.NewShuffler(value)
	}

	result, err := scheduler.Schedule(input)
	if err != nil {
		h.fail(c, err)
		return
	}

	response := toResultResponse(result, scheduler.Summarize(result, roster))
	response.Strategy = string(input.Strategy)
	response.Ordering = string(input.Ordering)
	response.Rotation = req.Rotation
	response.Seed = seed

	c.JSON(http.StatusOK, response)
}

func (h *Handler) planInput(req PlanRequest) ([]scheduler.Worker, []scheduler.Window, scheduler.Policy, error) {
	roster, err := config.ToWorkers(req.Roster)
	if err != nil {
		return nil, nil, scheduler.Policy{}, err
	}
	windows, err := config.ToWindows(req.Windows)
	if err != nil {
		return nil, nil, scheduler.Policy{}, err
	}

	policy := h.Cfg.SchedulerPolicy()
	if req.Policy != nil {
		policy = req.Policy.ToPolicy()
	}
	return roster, windows, policy, nil
}

// ListDays lists stored schedules, newest first
func (h *Handler) ListDays(c *gin.Context) {
	schedules, err := services.ListSchedules(c.Request.Context(), h.Store)
	if err != nil {
		h.fail(c, err)
		return
	}

	days := make([]DayResponse, 0, len(schedules))
	for _, schedule := range schedules {
		days = append(days, toDayResponse(schedule))
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetDay returns the schedule stored for a date
func (h *Handler) GetDay(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}

	view, err := services.GetSchedule(c.Request.Context(), h.Store, h.Cfg, date.Format(config.DateLayout))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toStoredResponse(view.Schedule, view.Summary))
}

// PlanDay returns the slice plan for a configured date
func (h *Handler) PlanDay(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}

	day, plan, err := services.PlanDay(h.Cfg, date, h.Logger)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     day.DateKey(),
		"strategy": day.Strategy,
		"absent":   day.Absent,
		"plan":     toPlanResponse(plan),
	})
}

// GenerateDay schedules a configured date and stores it unless dryRun is set
func (h *Handler) GenerateDay(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}

	var req GenerateRequest
	if !h.bind(c, &req, true) {
		return
	}

	h.generateMu.Lock()
	defer h.generateMu.Unlock()

	generated, err := services.GenerateSchedule(c.Request.Context(), h.Store, h.Cfg, h.Logger, services.GenerateOptions{
		Date:     date,
		Strategy: scheduler.Strategy(req.Strategy),
		Ordering: scheduler.Ordering(req.Ordering),
		Seed:     req.Seed,
		DryRun:   req.DryRun,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.Logger.Info("Generated day over HTTP",
		zap.String("date", generated.Schedule.Date),
		zap.Bool("saved", generated.Saved))

	response := toResultResponse(generated.Result, generated.Summary)
	response.ID = generated.Schedule.ID
	response.Date = generated.Schedule.Date
	response.Strategy = generated.Schedule.Strategy
	response.Ordering = generated.Schedule.Ordering
	response.Rotation = generated.Schedule.Rotation
	response.Seed = generated.Seed
	response.Saved = generated.Saved

	c.JSON(http.StatusOK, response)
}
