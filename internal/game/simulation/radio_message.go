package simulation

import (
	"time"

	"atc-landing/pkg/types"
)

type RadioMessage struct {
	Timestamp time.Time
	Callsign  types.AircraftID
	Message   string
	IsUrgent  bool
}

func (s *Simulation) AddRadioMessage(callsign types.AircraftID, message string, isUrgent bool) {
	msg := RadioMessage{
		Timestamp: s.TimeOfDay,
		Callsign:  callsign,
		Message:   message,
		IsUrgent:  isUrgent,
	}
	s.RadioLog = append(s.RadioLog, msg)

	if len(s.RadioLog) > s.maxRadioLogSize {
		s.RadioLog = s.RadioLog[len(s.RadioLog)-s.maxRadioLogSize:]
	}
}

// RecentRadioMessages returns up to n of the newest messages, oldest first.
func (s *Simulation) RecentRadioMessages(n int) []RadioMessage {
	if n <= 0 {
		return nil
	}
	if n > len(s.RadioLog) {
		n = len(s.RadioLog)
	}
	return s.RadioLog[len(s.RadioLog)-n:]
}
