package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuro_sim"
	"neuro_sim/neuro_controllers"
)

func TestSettingsByUidHandler(t *testing.T) {
	settings, err := neuro_sim.SettingsFactory("ALLOW_TIES", 0.75)
	require.NoError(t, err)

	testMap := neuro_controllers.NewSessionMap()
	testMap.Sessions["abc"] = &neuro_controllers.OpenSession{
		Uid:      "abc",
		Scenario: "single_winner",
		Config:   settings,
	}

	r := httptest.NewRequest(http.MethodGet, "/get-config?id=abc", nil)
	w := httptest.NewRecorder()
	settingsByUidHandler(w, r, testMap)

	require.Equal(t, http.StatusOK, w.Code)
	var config map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &config))
	assert.Equal(t, 0.75, config["Threshold"])
	assert.Equal(t, "ALLOW_TIES", config["TiePolicy"])
	assert.Equal(t, 10.0, config["Tau"])
}

func TestSettingsByUidHandlerUnknownSession(t *testing.T) {
	testMap := neuro_controllers.NewSessionMap()

	r := httptest.NewRequest(http.MethodGet, "/get-config?id=missing", nil)
	w := httptest.NewRecorder()
	settingsByUidHandler(w, r, testMap)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSessionMapHandlerExposesTracking(t *testing.T) {
	testMap := neuro_controllers.NewSessionMap()
	testMap.Sessions["abc"] = &neuro_controllers.OpenSession{
		Uid:      "abc",
		Scenario: "single_winner",
		Tracking: true,
	}

	r := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	w := httptest.NewRecorder()
	listSessionMapHandler(w, r, testMap)

	var sessions map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessions))
	require.Contains(t, sessions, "abc")
	assert.Equal(t, true, sessions["abc"]["tracking"])
}

func TestSetStreaming(t *testing.T) {
	enableChannel := make(chan bool, 1)

	setStreaming(enableChannel, true)
	setStreaming(enableChannel, false)
	// Two toggles without a drain in between: the latest one wins.
	assert.False(t, <-enableChannel)

	// A nil channel is a no-op, not a panic.
	setStreaming(nil, true)
}
