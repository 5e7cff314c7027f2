package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"neuro_sim/neuro_controllers"
)

var sessionMap = neuro_controllers.NewSessionMap()

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	welcomeMessage := " -  -  NeuroSim Control Server  -  - "
	fmt.Println(welcomeMessage)

	dbController, err := neuro_controllers.NewDatabaseController(
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"))
	if err != nil {
		fmt.Println(err)
		return
	}

	defer dbController.CloseDb()

	plotDir := os.Getenv("PLOT_DIR")
	if plotDir == "" {
		plotDir = "plots"
	}
	renderController, err := neuro_controllers.NewRenderController(plotDir)
	if err != nil {
		fmt.Println(err)
		return
	}

	simController := neuro_controllers.SimulationController{
		StrikeController:   neuro_controllers.StrikeController{},
		RecallController:   neuro_controllers.RecallController{},
		DatabaseController: *dbController,
		RenderController:   renderController,
	}

	http.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
		listSessionMapHandler(w, r, sessionMap)
	})

	http.HandleFunc("/track-sessions", func(w http.ResponseWriter, r *http.Request) {
		trackAllSessionsHandler(w, r, sessionMap)
	})

	http.HandleFunc("/recovery-stats", func(w http.ResponseWriter, r *http.Request) {
		recoveryStatsHandler(w, r, dbController)
	})

	http.HandleFunc("/selection-stats", func(w http.ResponseWriter, r *http.Request) {
		selectionStatsHandler(w, r, dbController)
	})

	http.HandleFunc("/get-config", func(w http.ResponseWriter, r *http.Request) {
		settingsByUidHandler(w, r, sessionMap)
	})

	http.HandleFunc("/session-table", func(w http.ResponseWriter, r *http.Request) {
		sessionTableHandler(w, r, dbController)
	})

	http.HandleFunc("/events", realTimeSessionHandler)

	go simController.SimulateOnStart(sessionMap)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	http.ListenAndServe(":"+port, nil)

}

func listSessionMapHandler(w http.ResponseWriter, r *http.Request, sessionMap *neuro_controllers.SessionMap) {
	sessionMap.Mutex.RLock()
	jsonString, err := json.Marshal(sessionMap.Sessions)
	sessionMap.Mutex.RUnlock()
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Fprint(w, string(jsonString))
}

func trackAllSessionsHandler(w http.ResponseWriter, r *http.Request, sessionMap *neuro_controllers.SessionMap) {
	// Set http headers required for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// You may need this locally for CORS requests
	w.Header().Set("Access-Control-Allow-Origin", "*")

	clientGone := r.Context().Done()

	rc := http.NewResponseController(w)
	t := time.NewTicker(time.Second * 5)
	defer t.Stop()
	for {
		select {
		case <-clientGone:
			return
		case <-t.C:
			sessionMap.Mutex.RLock()
			jsonString, err := json.Marshal(sessionMap.Sessions)
			sessionMap.Mutex.RUnlock()
			if err != nil {
				fmt.Println(err)
				return
			}

			_, err = fmt.Fprintf(w, "data: %s\n\n", string(jsonString))
			if err != nil {
				return
			}
			err = rc.Flush()
			if err != nil {
				return
			}
		}
	}
}

func realTimeSessionHandler(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	// Set http headers required for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	w.Header().Set("Access-Control-Allow-Origin", "*")

	clientGone := r.Context().Done()

	rc := http.NewResponseController(w)

	sessionMap.Mutex.Lock()
	sessionPointer, ok := sessionMap.Sessions[id]
	if !ok {
		sessionMap.Mutex.Unlock()
		fmt.Println("Session UID not found: ", id)
		http.NotFound(w, r)
		return
	}
	session := *sessionPointer
	sessionMap.Sessions[session.Uid].Tracking = true
	sessionMap.Mutex.Unlock()
	setStreaming(session.EnableStateChannel, true)

	for {
		select {
		case <-clientGone:
			setStreaming(session.EnableStateChannel, false)
			sessionMap.Mutex.Lock()
			if _, ok := sessionMap.Sessions[session.Uid]; ok {
				sessionMap.Sessions[session.Uid].Tracking = false
			}
			sessionMap.Mutex.Unlock()
			return
		case currentState, open := <-session.CurrentStateChannel:
			if !open {
				return
			}
			parsedState, err := json.Marshal(currentState)
			if err != nil {
				return
			}
			_, err = fmt.Fprintf(w, "data: %s\n\n", parsedState)
			if err != nil {
				return
			}
			err = rc.Flush()
			if err != nil {
				return
			}
		}
	}
}

func recoveryStatsHandler(w http.ResponseWriter, r *http.Request, dbController *neuro_controllers.DatabaseController) {
	batch := r.FormValue("batch")
	if batch == "" {
		http.Error(w, "missing batch parameter", http.StatusBadRequest)
		return
	}

	stats, err := dbController.QueryRecoveryStats(batch)
	if err != nil {
		fmt.Println("Error while querying recovery stats")
		fmt.Println(err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(stats)
}

// setStreaming replaces any pending toggle so the latest listener state
// wins; the session drains the channel between steps and may already be
// gone, so the send must never block.
func setStreaming(enableChannel chan bool, enabled bool) {
	if enableChannel == nil {
		return
	}
	select {
	case <-enableChannel:
	default:
	}
	select {
	case enableChannel <- enabled:
	default:
	}
}

func settingsByUidHandler(w http.ResponseWriter, r *http.Request, sessionMap *neuro_controllers.SessionMap) {
	id := r.FormValue("id")
	sessionMap.Mutex.RLock()
	sessionPointer, ok := sessionMap.Sessions[id]
	if !ok {
		sessionMap.Mutex.RUnlock()
		fmt.Println("Session UID not found: ", id)
		http.NotFound(w, r)
		return
	}
	session := *sessionPointer
	sessionMap.Mutex.RUnlock()

	parsedConfig, err := json.Marshal(session.Config)
	if err != nil {
		fmt.Println(err)
		http.Error(w, "config marshal failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, string(parsedConfig))
}

func sessionTableHandler(w http.ResponseWriter, r *http.Request, dbController *neuro_controllers.DatabaseController) {
	tableName := r.FormValue("name")
	jsonString, err := dbController.FetchFullTableAsJSON(tableName)
	if err != nil {
		fmt.Println("Error while fetching table: ", tableName)
		fmt.Println(err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, jsonString)
}

func selectionStatsHandler(w http.ResponseWriter, r *http.Request, dbController *neuro_controllers.DatabaseController) {
	stats, err := dbController.QuerySelectionCounts()
	if err != nil {
		fmt.Println("Error while querying selection stats")
		fmt.Println(err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(stats)
}
