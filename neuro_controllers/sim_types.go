package neuro_controllers

import (
	"sync"
	"time"

	"neuro_sim"
)

type OpenSession struct {
	Uid                 string
	Scenario            string
	Config              interface{} `json:"-"`
	StartTime           time.Time
	MaxSessionCount     int
	CurrentSessionCount int
	Tracking            bool                               `json:"tracking"`
	CurrentStateChannel chan neuro_sim.SessionStateMessage `json:"-"`
	EnableStateChannel  chan bool                          `json:"-"`
}

type SessionMap struct {
	Sessions map[string]*OpenSession
	Mutex    sync.RWMutex
}

func NewSessionMap() *SessionMap {
	return &SessionMap{
		Sessions: make(map[string]*OpenSession),
	}
}
