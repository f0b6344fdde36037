package protocol

// A StatelessResetToken is associated with a connection ID when it is issued,
// and lets the peer recognize a stateless reset for that connection.
type StatelessResetToken [16]byte
