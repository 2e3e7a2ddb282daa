package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/touchwood-app/touchwood/internal/app/social"
	"github.com/touchwood-app/touchwood/internal/domain"
)

// ─── Rituals ────────────────────────────────────────────────────────────────

type completeRitualRequest struct {
	RitualID string `json:"ritual_id"`
	Mood     int    `json:"mood,omitempty"`
	Note     string `json:"note,omitempty"`
}

func (s *Server) handleCompleteRitual(w http.ResponseWriter, r *http.Request) {
	var req completeRitualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.RitualID == "" {
		writeError(w, http.StatusBadRequest, "ritual_id is required")
		return
	}

	event, err := s.deps.Recorder.RecordRitual(req.RitualID, req.Mood, req.Note, time.Now())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	streak, err := s.deps.Progress.CurrentStreak()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"event":  event,
		"streak": streak,
	})
}

func (s *Server) handleListRituals(w http.ResponseWriter, r *http.Request) {
	rituals, err := s.deps.Catalog.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rituals": rituals,
	})
}

type createRitualRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleCreateRitual(w http.ResponseWriter, r *http.Request) {
	var req createRitualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	ritual, err := s.deps.Catalog.CreateCustom(req.Name, domain.RitualCategory(req.Category), req.Description, time.Now())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ritual)
}

func (s *Server) handleUseSpecialRitual(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.deps.Seasonal.UseRitual(id, time.Now()); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "used"})
}

// ─── Progress ───────────────────────────────────────────────────────────────

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.deps.Progress.CurrentStreak()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	today, err := s.deps.Progress.TodayCount(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"streak":      streak,
		"today_count": today,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	stats, err := s.deps.Recorder.Stats(now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	points, err := s.deps.Achievements.TotalPoints()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	unlocked, err := s.deps.Achievements.UnlockedCount()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	byCategory, err := s.deps.Progress.CountByCategory()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stats":              stats,
		"achievement_points": points,
		"achievements":       map[string]int{"unlocked": unlocked, "total": s.deps.Achievements.TotalCount()},
		"by_category":        byCategory,
	})
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	state, err := s.deps.Level.Current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	toNext, err := s.deps.Level.XPToNextLevel()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	pct, err := s.deps.Level.ProgressPct()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"level":            state.Level,
		"xp":               state.CurrentXP,
		"xp_to_next_level": toNext,
		"progress_pct":     pct,
	})
}

// ─── Challenges ─────────────────────────────────────────────────────────────

func (s *Server) handleChallenges(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	today, err := s.deps.Challenges.RefreshDaily(now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	history, err := s.deps.Challenges.History(20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"today":   today,
		"history": history,
	})
}

// ─── Achievements ───────────────────────────────────────────────────────────

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	unlocked, err := s.deps.Achievements.ListUnlocked()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	points, err := s.deps.Achievements.TotalPoints()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"catalog":  s.deps.Achievements.Definitions(),
		"unlocked": unlocked,
		"points":   points,
	})
}

// ─── Seasonal Events ────────────────────────────────────────────────────────

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	cal := s.deps.Seasonal.PartitionAt(now)
	available, err := s.deps.Seasonal.AvailableRituals(now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"current":           cal.Current,
		"upcoming":          cal.Upcoming,
		"past":              cal.Past,
		"available_rituals": available,
	})
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	ev, err := s.deps.Seasonal.Event(chi.URLParam(r, "id"), now)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	progress, err := s.deps.Seasonal.EventProgress(ev.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rewards, err := s.deps.Seasonal.EarnedRewards(ev)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"event":          ev,
		"active":         ev.IsActive(now),
		"progress":       progress,
		"earned_rewards": rewards,
	})
}

// ─── Mood ───────────────────────────────────────────────────────────────────

func (s *Server) handleMoodReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.deps.Mood.Report(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ─── Social ─────────────────────────────────────────────────────────────────

type shareRequest struct {
	Kind string `json:"kind"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload, err := s.deps.Recorder.Share(social.ShareKind(req.Kind), time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleFriends(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.Recorder.Stats(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"feed": s.deps.Social.FriendFeed(stats),
	})
}

// ─── Notifications ──────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}
	pending, err := s.deps.Notifier.Pending(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": pending,
	})
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.deps.Notifier.MarkShown(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "shown"})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRitualNotFound), errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrChallengeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidMood):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRitualExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRitualLocked), errors.Is(err, domain.ErrEventNotActive),
		errors.Is(err, domain.ErrUsageLimitReached):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
