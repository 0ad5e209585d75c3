package controllers

import (
	"io"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"

	"chantd/internal/providers"
	"chantd/internal/services"
	"chantd/internal/storage"
	"chantd/internal/structures"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.StatsServiceInterface
	store   storage.StoreInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	conf    *structures.Config
}

func NewApiController(logger providers.Logger, service services.StatsServiceInterface, store storage.StoreInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface, conf *structures.Config) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		store:   store,
		cache:   cache,
		metrics: metrics,
		conf:    conf,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

type countPayload struct {
	Count int `json:"count"`
}

// ReceiveCount handles POST /count: add n chants to today and the lifetime
// total. A missing count means a single chant.
func (ac *ApiController) ReceiveCount(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	payload := countPayload{Count: 1}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && err != io.EOF {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Count <= 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ac.service.Increment(r.Context(), payload.Count)
	ac.metrics.AddChants(payload.Count)
	writeJSON(w, http.StatusCreated, ac.service.GetSummary())
}

func (ac *ApiController) GetSummary(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "summary", func() (any, error) {
		return ac.service.GetSummary(), nil
	})
}

func (ac *ApiController) GetStreak(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "streak", func() (any, error) {
		return map[string]int{"streak": ac.service.GetStreak()}, nil
	})
}

func (ac *ApiController) GetHistory(w http.ResponseWriter, r *http.Request) {
	days := ac.conf.Stats.HistoryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		days = parsed
	}
	if days > ac.conf.Stats.MaxHistoryDays {
		days = ac.conf.Stats.MaxHistoryDays
	}

	ac.serveFromCacheOrCompute(w, "history:"+strconv.Itoa(days), func() (any, error) {
		return ac.service.GetHistory(days), nil
	})
}

func (ac *ApiController) GetAchievements(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "achievements", func() (any, error) {
		return ac.service.GetAchievements(), nil
	})
}

func (ac *ApiController) GetTimeStats(w http.ResponseWriter, r *http.Request) {
	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = services.RangeToday
	}
	stats, err := ac.service.GetTimeStats(rng)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type activityPayload struct {
	Japa  *bool `json:"japa"`
	Audio *bool `json:"audio"`
}

// SetActivity handles POST /activity: toggle the japa and audio flags.
// Flags stay live until explicitly cleared; there is no idle timeout.
func (ac *ApiController) SetActivity(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload activityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Japa == nil && payload.Audio == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if payload.Japa != nil {
		ac.service.SetJapaActive(*payload.Japa)
	}
	if payload.Audio != nil {
		ac.service.SetAudioActive(*payload.Audio)
	}
	writeJSON(w, http.StatusOK, map[string]bool{
		"japa":  ac.service.JapaActive(),
		"audio": ac.service.AudioActive(),
	})
}

func (ac *ApiController) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	val, err := ac.store.GetSetting(r.Context(), key, nil)
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Read setting %q failed: %s", key, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": val})
}

type settingPayload struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

func (ac *ApiController) SetSetting(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload settingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Key == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := ac.store.SetSetting(r.Context(), payload.Key, payload.Value); err != nil {
		ac.logger.Errorf(providers.TypePost, "Write setting %q failed: %s", payload.Key, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset handles POST /reset: clears the settings namespace and dependent
// in-memory state. Daily history stays.
func (ac *ApiController) Reset(w http.ResponseWriter, r *http.Request) {
	if err := ac.service.Reset(r.Context()); err != nil {
		ac.logger.Errorf(providers.TypePost, "Reset failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) UploadAudio(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, ac.conf.Stats.MaxAudioBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := ac.store.SaveAudio(r.Context(), id, data); err != nil {
		ac.logger.Errorf(providers.TypePost, "Save audio %q failed: %s", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (ac *ApiController) GetAudio(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	data, err := ac.store.GetAudio(r.Context(), id)
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Read audio %q failed: %s", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (ac *ApiController) DeleteAudio(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := ac.store.DeleteAudio(r.Context(), id); err != nil {
		ac.logger.Errorf(providers.TypeApp, "Delete audio %q failed: %s", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
