// filepath: internal/api/handlers/settings_handler_test.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"teachermonitor/internal/models"
	"teachermonitor/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsAPI(t *testing.T) {
	api := setupTestAPI(t)

	value := models.TextValue("Unity College")
	api.mockSettings.On("SetSetting", models.SettingSchoolName, value).Return(nil).Once()

	body, _ := json.Marshal(models.Setting{Key: models.SettingSchoolName, Value: value})
	resp := doRequest(t, http.MethodPut, api.server.URL+"/api/setting", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	api.mockSettings.On("GetSetting", models.SettingSchoolName).Return(value, nil).Once()
	resp = doRequest(t, http.MethodGet, api.server.URL+"/api/setting?key=schoolName", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Setting
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.Equal(t, "Unity College", got.Value.String())

	api.mockSettings.AssertExpectations(t)
}

func TestSettingsAPI_UnsetKeyIs404(t *testing.T) {
	api := setupTestAPI(t)

	api.mockSettings.On("GetSetting", models.SettingSchoolLogo).Return(models.SettingValue{}, shared.ErrNotFound).Once()
	resp := doRequest(t, http.MethodGet, api.server.URL+"/api/setting?key=schoolLogo", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestSettingsAPI_UnknownKeyIs400(t *testing.T) {
	api := setupTestAPI(t)

	api.mockSettings.On("GetSetting", "themeColor").Return(models.SettingValue{}, fmt.Errorf("unknown setting key: themeColor")).Once()
	resp := doRequest(t, http.MethodGet, api.server.URL+"/api/setting?key=themeColor", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
