// filepath: internal/services/settings_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"teachermonitor/internal/models"
	"teachermonitor/internal/reactive"
	"teachermonitor/internal/repository"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

type settingsService struct {
	store repository.Store
	cache *cache.Cache
}

// NewSettingsService creates the settings service. Reads go through a
// short-lived cache because the branding block is re-read on every
// report render.
func NewSettingsService(store repository.Store) SettingsService {
	return &settingsService{
		store: store,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *settingsService) GetSetting(key string) (models.SettingValue, error) {
	if _, err := models.KindForKey(key); err != nil {
		return models.SettingValue{}, err
	}

	if cached, found := s.cache.Get(key); found {
		return cached.(models.SettingValue), nil
	}

	rec, err := s.store.Get(repository.TableSettings, key)
	if err != nil {
		return models.SettingValue{}, err
	}

	var value models.SettingValue
	if err := json.Unmarshal(rec.Doc, &value); err != nil {
		return models.SettingValue{}, fmt.Errorf("corrupt setting %s: %w", key, err)
	}

	s.cache.Set(key, value, cache.DefaultExpiration)
	return value, nil
}

func (s *settingsService) SetSetting(key string, value models.SettingValue) error {
	kind, err := models.KindForKey(key)
	if err != nil {
		return err
	}
	if value.Kind != kind {
		return fmt.Errorf("setting %s holds %s values, got %s", key, kind, value.Kind)
	}

	rec, err := settingRecord(models.Setting{Key: key, Value: value})
	if err != nil {
		return err
	}
	if err := s.store.Put(repository.TableSettings, rec); err != nil {
		return err
	}

	s.cache.Delete(key)
	return nil
}

func (s *settingsService) GetSettings() ([]models.Setting, error) {
	recs, err := s.store.ToArray(repository.TableSettings)
	if err != nil {
		return nil, err
	}

	settings := make([]models.Setting, 0, len(recs))
	for _, rec := range recs {
		var value models.SettingValue
		if err := json.Unmarshal(rec.Doc, &value); err != nil {
			return nil, fmt.Errorf("corrupt setting %s: %w", rec.ID, err)
		}
		settings = append(settings, models.Setting{Key: rec.ID, Value: value})
	}
	return settings, nil
}

// Watch keeps the cache coherent with committed writes that bypass
// SetSetting, like a backup import or a clear-all. Every store change
// re-reads the table and swaps the cached entries. The caller owns the
// returned query and closes it on shutdown.
func (s *settingsService) Watch(broker *reactive.Broker, logger *logrus.Logger) *reactive.Query[[]models.Setting] {
	read := func(ctx context.Context) ([]models.Setting, error) {
		return s.GetSettings()
	}
	return reactive.Observe(broker, read, func(settings []models.Setting) {
		s.cache.Flush()
		for _, st := range settings {
			s.cache.Set(st.Key, st.Value, cache.DefaultExpiration)
		}
	}, logger)
}

// Branding assembles the school identity block. Unset keys simply stay
// blank on the page.
func (s *settingsService) Branding() Branding {
	var b Branding
	if v, err := s.GetSetting(models.SettingSchoolName); err == nil {
		b.SchoolName = v.String()
	}
	if v, err := s.GetSetting(models.SettingSchoolAddress); err == nil {
		b.SchoolAddress = v.String()
	}
	if v, err := s.GetSetting(models.SettingSchoolLogo); err == nil {
		b.LogoURI = v.String()
	}
	if v, err := s.GetSetting(models.SettingReportFooter); err == nil {
		b.ReportFooter = v.String()
	}
	return b
}
