// filepath: internal/initconfig/init.go
package initconfig

import (
	"os"
	"strings"

	"teachermonitor/internal/logging"
	"teachermonitor/internal/models"
	"teachermonitor/internal/services"

	"github.com/BurntSushi/toml"
)

// Run executes the one-time initialization from the config file.
// Existing data wins: teachers already present by name and settings
// already set are left alone, so running twice is harmless.
func Run(teacherSvc services.TeacherService, settingsSvc services.SettingsService, configPath string) {
	logging.Log.Infof("Initialization config file found at: %s. Processing...", configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		logging.Log.Errorf("Failed to read init config file '%s': %v", configPath, err)
		return
	}

	var config InitConfig
	if _, err := toml.Decode(string(data), &config); err != nil {
		logging.Log.Errorf("Failed to parse TOML init config file '%s': %v", configPath, err)
		return
	}

	logging.Log.Infof("Found %d teacher(s) in init config.", len(config.Teachers))

	processSchool(settingsSvc, config.School)
	processTeachers(teacherSvc, config.Teachers)
}

func processSchool(settingsSvc services.SettingsService, school InitSchool) {
	seed := func(key string, value models.SettingValue) {
		if value.String() == "" {
			return
		}
		if _, err := settingsSvc.GetSetting(key); err == nil {
			logging.Log.Infof("Setting '%s' already set, skipping.", key)
			return
		}
		if err := settingsSvc.SetSetting(key, value); err != nil {
			logging.Log.Errorf("Failed to seed setting '%s': %v", key, err)
			return
		}
		logging.Log.Infof("Setting '%s' seeded.", key)
	}

	seed(models.SettingSchoolName, models.TextValue(school.Name))
	seed(models.SettingSchoolAddress, models.TextValue(school.Address))
	seed(models.SettingReportFooter, models.LongTextValue(school.ReportFooter))
}

// processTeachers creates the teachers that do not exist yet, matched
// case-insensitively by name.
func processTeachers(teacherSvc services.TeacherService, teachers []InitTeacher) {
	existing, err := teacherSvc.GetTeachers()
	if err != nil {
		logging.Log.Errorf("Failed to list teachers for init config: %v", err)
		return
	}
	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		known[strings.ToLower(t.Name)] = true
	}

	for _, t := range teachers {
		if t.Name == "" {
			logging.Log.Warn("Skipping teacher with empty name.")
			continue
		}
		if known[strings.ToLower(t.Name)] {
			logging.Log.Infof("Teacher '%s' already exists, skipping.", t.Name)
			continue
		}

		if _, err := teacherSvc.SaveTeacher(models.Teacher{
			Name:     t.Name,
			Subjects: t.Subjects,
			Classes:  t.Classes,
		}); err != nil {
			logging.Log.Errorf("Failed to create teacher '%s': %v", t.Name, err)
			continue
		}
		logging.Log.Infof("Teacher '%s' created.", t.Name)
	}
}
