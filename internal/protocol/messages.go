package protocol

// MessageType identifies the kind of message sent over the wire.
type MessageType string

const (
	// Server -> Client messages
	MsgWelcome  MessageType = "welcome"
	MsgSpectate MessageType = "spectate"
	MsgScores   MessageType = "scores"
	MsgError    MessageType = "error"

	// Client -> Server messages
	MsgHello    MessageType = "hello"
	MsgWatch    MessageType = "watch"
	MsgState    MessageType = "state"
	MsgFinished MessageType = "finished"
)

// Envelope is the top-level wire format for all messages.
type Envelope struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Server -> Client payloads ---

// WelcomePayload is sent when a client first connects.
type WelcomePayload struct {
	SessionID string `json:"session_id"`
}

// GameView is a compressed snapshot of one player's game, built from
// the plain numeric fields of an engine snapshot.
type GameView struct {
	SessionID  string `json:"session_id"`
	PlayerName string `json:"player_name"`
	Score      int    `json:"score"`
	Level      int    `json:"level"`
	Lines      int    `json:"lines"`
	Combo      int    `json:"combo"`
	Alive      bool   `json:"alive"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	// Board is a flat row-major array of Width*Height cells. Each
	// value is a piece id (0 = empty) doubling as a color index.
	Board []int `json:"board"`
}

// SpectatePayload carries the games currently in progress to watchers.
type SpectatePayload struct {
	Games []GameView `json:"games"`
}

// ScoreRow is one leaderboard entry.
type ScoreRow struct {
	Player    string `json:"player"`
	Score     int    `json:"score"`
	Level     int    `json:"level"`
	Lines     int    `json:"lines"`
	CreatedAt string `json:"created_at"`
}

// ScoresPayload is the current top of the leaderboard.
type ScoresPayload struct {
	Top []ScoreRow `json:"top"`
}

// ErrorPayload reports a failed request back to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// --- Client -> Server payloads ---

// HelloPayload registers a playing session under a display name.
type HelloPayload struct {
	PlayerName string `json:"player_name"`
}

// WatchPayload switches the connection into watch-only mode.
type WatchPayload struct{}

// StatePayload is a playing client's current game state.
type StatePayload struct {
	Score  int  `json:"score"`
	Level  int  `json:"level"`
	Lines  int  `json:"lines"`
	Combo  int  `json:"combo"`
	Alive  bool `json:"alive"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
	// Board is flat row-major, Width*Height cells.
	Board []int `json:"board"`
}

// FinishedPayload reports a completed game for the leaderboard.
type FinishedPayload struct {
	Score int `json:"score"`
	Level int `json:"level"`
	Lines int `json:"lines"`
}
