package ws

const (
	// client - server
	MsgForm  = "form"
	MsgClaim = "claim"
	MsgPing  = "ping"

	// server - client
	MsgReady   = "ready"
	MsgPreview = "preview"
	MsgClaimed = "claimed"
	MsgPong    = "pong"
	MsgError   = "error"
)
