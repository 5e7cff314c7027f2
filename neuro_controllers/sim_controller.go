package neuro_controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/beevik/ntp"
	"github.com/sourcegraph/conc/pool"

	"neuro_sim"
	"neuro_sim/neuro_patterns"
)

type SimulationController struct {
	StrikeController   StrikeController
	RecallController   RecallController
	DatabaseController DatabaseController
	RenderController   *RenderController
}

// SimulateOnStart loads the scenario grid from simulation_settings.json and
// runs every configured strike scenario and recall batch on a bounded
// worker pool. Strike sessions are deterministic so each scenario runs
// once; recall batches run MaxSessionCount independently-seeded noisy
// recalls per pattern.
func (s *SimulationController) SimulateOnStart(sessionMap *SessionMap) {

	simSettings, err := neuro_sim.LoadSimulationSettings("simulation_settings.json")
	if err != nil {
		log.Fatalf("Error loading settings: %v", err)
	}

	fmt.Println("Settings loaded:")
	fmt.Println(simSettings)

	workerPool := pool.New().WithMaxGoroutines(simSettings.MaxWorkerCount)
	for _, scenario := range simSettings.StrikeScenarios {
		settings, err := neuro_sim.SettingsFactory(scenario.TiePolicy, scenario.Threshold)
		if err != nil {
			log.Printf("Skipping strike scenario %s: %v", scenario.Name, err)
			continue
		}
		workerPool.Go(func() {
			s.runStrikeScenario(sessionMap, scenario, settings)
		})
	}
	for _, batch := range simSettings.RecallBatches {
		settings, err := neuro_sim.RecallSettingsFactory(batch.NoiseFlipCount)
		if err != nil {
			log.Printf("Skipping recall batch %s: %v", batch.Name, err)
			continue
		}
		if batch.RecallSteps > 0 {
			settings.RecallSteps = batch.RecallSteps
		}
		workerPool.Go(func() {
			s.runRecallBatch(sessionMap, batch, settings, simSettings.MaxSessionCount)
		})
	}
	workerPool.Wait()
	fmt.Println("-- All automatic configs finished --")
}

func (s *SimulationController) runStrikeScenario(sessionMap *SessionMap, scenario neuro_sim.StrikeScenarioConfig, settings neuro_sim.ScenarioSettings) {
	startTime, ntpErr := s.getCurrentTimeFromNTP()
	if ntpErr != nil {
		startTime = time.Now()
	}
	token := s.generateToken(startTime, scenario.Name)
	sessionBufferSize := 10
	sessionChannel := make(chan neuro_sim.SessionStateMessage, sessionBufferSize)
	enableChannel := make(chan bool, 1)
	openSession := OpenSession{
		Uid:                 token,
		Scenario:            scenario.Name,
		Config:              settings,
		StartTime:           startTime,
		MaxSessionCount:     1,
		CurrentSessionCount: 0,
		CurrentStateChannel: sessionChannel,
		EnableStateChannel:  enableChannel,
	}
	sessionMap.Mutex.Lock()
	sessionMap.Sessions[token] = &openSession
	sessionMap.Mutex.Unlock()

	sendIterThreshold := 10
	sendIterStep := 100
	data, err := s.StrikeController.StartStrikeSession(settings, scenario.Stimuli, sessionChannel, sendIterThreshold, sendIterStep, enableChannel)
	endTime, ntpErr := s.getCurrentTimeFromNTP()
	if ntpErr != nil {
		endTime = time.Now()
	}
	if err != nil {
		log.Printf("Strike scenario %s failed: %v", scenario.Name, err)
	} else {
		s.DatabaseController.InsertStrikeSession(scenario.Name, settings, data, startTime, endTime)
		if s.RenderController != nil {
			s.RenderController.RenderSeries(data.Times, data.Membrane, scenario.Name+" membrane potential")
			s.RenderController.RenderSeries(data.GateTimes, data.GateMembrane, scenario.Name+" membrane potential gated")
			s.RenderController.RenderGrid(tileRows(scenario.Stimuli, len(scenario.Stimuli)), scenario.Name+" firing rate")
		}
		sessionMap.Mutex.Lock()
		sessionMap.Sessions[token].CurrentSessionCount += 1
		sessionMap.Mutex.Unlock()
	}

	sessionMap.Mutex.Lock()
	delete(sessionMap.Sessions, token)
	sessionMap.Mutex.Unlock()
	close(sessionChannel)
}

func (s *SimulationController) runRecallBatch(sessionMap *SessionMap, batch neuro_sim.RecallBatchConfig, settings neuro_sim.RecallSettings, maxSessionCount int) {
	source, err := s.RecallController.SourceFactory(batch.Name)
	if err != nil {
		log.Printf("Skipping recall batch: %v", err)
		return
	}
	w, err := s.RecallController.TrainBatch(source, settings)
	if err != nil {
		log.Printf("Training failed for batch %s: %v", batch.Name, err)
		return
	}

	patterns := source.Patterns()
	labels := source.Labels()

	startTime, ntpErr := s.getCurrentTimeFromNTP()
	if ntpErr != nil {
		startTime = time.Now()
	}
	token := s.generateToken(startTime, batch.Name)
	sessionBufferSize := 10
	sessionChannel := make(chan neuro_sim.SessionStateMessage, sessionBufferSize)
	openSession := OpenSession{
		Uid:                 token,
		Scenario:            batch.Name,
		Config:              settings,
		StartTime:           startTime,
		MaxSessionCount:     maxSessionCount * len(patterns),
		CurrentSessionCount: 0,
		CurrentStateChannel: sessionChannel,
		EnableStateChannel:  make(chan bool, 1),
	}
	sessionMap.Mutex.Lock()
	sessionMap.Sessions[token] = &openSession
	sessionMap.Mutex.Unlock()

	streaming := false
	for pi, pattern := range patterns {
		if s.RenderController != nil {
			s.RenderController.RenderGrid(neuro_patterns.Reshape(pattern, source.GridRows(), source.GridCols()), batch.Name+" "+labels[pi]+" original")
		}
		for i := 0; i < maxSessionCount; i++ {
			select {
			case enabled := <-openSession.EnableStateChannel:
				streaming = enabled
			default:
			}
			streamChannel := sessionChannel
			if !streaming {
				streamChannel = nil
			}
			sessionStart, ntpErr := s.getCurrentTimeFromNTP()
			if ntpErr != nil {
				sessionStart = time.Now()
			}
			seed := time.Now().UnixNano()
			localRand := rand.New(rand.NewSource(seed))
			data, err := s.RecallController.StartRecallSession(settings, w, labels[pi], pattern, seed, localRand, streamChannel)
			sessionEnd, ntpErr := s.getCurrentTimeFromNTP()
			if ntpErr != nil {
				sessionEnd = time.Now()
			}
			if err != nil {
				log.Printf("Recall session for %s/%s failed: %v", batch.Name, labels[pi], err)
				continue
			}
			s.DatabaseController.InsertRecallSession(batch.Name, settings, data, sessionStart, sessionEnd)
			if s.RenderController != nil && i == 0 {
				s.RenderController.RenderGrid(neuro_patterns.Reshape(data.Noisy, source.GridRows(), source.GridCols()), batch.Name+" "+labels[pi]+" noisy")
				s.RenderController.RenderGrid(neuro_patterns.Reshape(data.Recovered, source.GridRows(), source.GridCols()), batch.Name+" "+labels[pi]+" recovered")
			}
			sessionMap.Mutex.Lock()
			sessionMap.Sessions[token].CurrentSessionCount += 1
			sessionMap.Mutex.Unlock()
		}
	}

	sessionMap.Mutex.Lock()
	delete(sessionMap.Sessions, token)
	sessionMap.Mutex.Unlock()
	close(sessionChannel)
}

func (s *SimulationController) getCurrentTimeFromNTP() (time.Time, error) {
	ntpServer := "ntp.shoa.cl"
	time, err := ntp.Time(ntpServer)
	if err != nil {
		return time, fmt.Errorf("failed to get time from NTP server: %v", err)
	}
	return time, nil
}

func (s *SimulationController) generateToken(startTime time.Time, scenarioName string) string {
	idStamp := fmt.Sprintf("%s%s", scenarioName, startTime)
	h := sha256.New()
	h.Write([]byte(idStamp))
	token := hex.EncodeToString(h.Sum(nil))
	return token
}

// tileRows repeats the stimulus vector as identical rows, the firing-rate
// grid shape the reference plots use.
func tileRows(stimuli []float64, rows int) [][]float64 {
	grid := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]float64, len(stimuli))
		copy(grid[r], stimuli)
	}
	return grid
}
