package usecase

import "context"

type LiveEventType string

const (
	LiveMatchUpdated      LiveEventType = "match.updated"
	LiveMatchFinished     LiveEventType = "match.finished"
	LiveScheduleGenerated LiveEventType = "schedule.generated"
	LiveScheduleDelayed   LiveEventType = "schedule.delayed"
)

// LiveEvent is broadcast to spectators of a tournament after a commit.
type LiveEvent struct {
	Type       LiveEventType `json:"type"`
	Tournament string        `json:"tournament"`
	Payload    any           `json:"payload"`
}

// LivePublisher fans events out to subscribers. Publish must not block
// on slow consumers.
type LivePublisher interface {
	Publish(ctx context.Context, event LiveEvent)
}

type noopLivePublisher struct{}

func (noopLivePublisher) Publish(context.Context, LiveEvent) {}

func livePublisherOrNoop(p LivePublisher) LivePublisher {
	if p == nil {
		return noopLivePublisher{}
	}
	return p
}

type LiveScorePayload struct {
	MatchID    string `json:"matchId"`
	HomeScore  int    `json:"homeScore"`
	AwayScore  int    `json:"awayScore"`
	IsFinished bool   `json:"isFinished"`
	Summary    string `json:"summary,omitempty"`
}

type LiveSchedulePayload struct {
	MatchIDs []string `json:"matchIds"`
}
