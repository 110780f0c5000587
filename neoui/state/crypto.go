package state

import "crypto/cipher"

// Frame is a sealed message: nonce followed by ciphertext and tag.
type Frame = Line

// Crypto holds the session cipher and the work queued for it.
type Crypto struct {
	// AEAD is nil until a key is installed; the crypto task then reports
	// every queued item as an auth failure.
	AEAD cipher.AEAD
	// Salt prefixes every nonce so two nodes sharing a key never collide.
	Salt [4]byte
	Seq  uint64

	Seal LineQueue
	Open LineQueue

	SealOverflowed bool
	OpenOverflowed bool

	Sealed uint32
	Opened uint32
	Failed uint32
}

// QueueSeal queues plain text for sealing.
func (c *Crypto) QueueSeal(text []byte) {
	if !c.Seal.Push(text) {
		c.SealOverflowed = true
	}
}

// QueueOpen queues a received frame for opening.
func (c *Crypto) QueueOpen(frame []byte) {
	if !c.Open.Push(frame) {
		c.OpenOverflowed = true
	}
}
