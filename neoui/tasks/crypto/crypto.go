// Package crypto seals outgoing chat lines and opens received frames.
//
// A frame is nonce ‖ ciphertext ‖ tag, sealed with ChaCha20-Poly1305.
// The nonce is the node salt followed by a big-endian sequence number.
package crypto

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"neo/neoui/kernel"
	"neo/neoui/metrics"
	"neo/neoui/msg"
	"neo/neoui/state"
)

var Info = kernel.Info{
	Name:           metrics.MakeName("Crypto"),
	RunEveryUS:     100_000,
	TimeBudgetUS:   10_000,
	MemBudgetBytes: 1_000,
}

const (
	KeySize   = chacha20poly1305.KeySize
	NonceSize = chacha20poly1305.NonceSize
	Overhead  = NonceSize + chacha20poly1305.Overhead
)

// Configure installs the session key. salt must differ between nodes
// sharing a key.
func Configure(c *state.Crypto, key []byte, salt [4]byte) error {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return fmt.Errorf("crypto: %w", err)
	}
	c.AEAD = aead
	c.Salt = salt
	return nil
}

// Task seals one queued line and opens one queued frame per run.
type Task struct{}

func (Task) Info() *kernel.Info { return &Info }

func (Task) Run(ctx *kernel.Context) {
	c := &ctx.Data.Crypto
	if c.SealOverflowed {
		c.SealOverflowed = false
		ctx.Fail(msg.ErrOverflow, msg.KindSeal)
	}
	if c.OpenOverflowed {
		c.OpenOverflowed = false
		ctx.Fail(msg.ErrOverflow, msg.KindLinkRx)
	}

	if line, ok := c.Seal.Pop(); ok {
		var buf [msg.MaxPayload]byte
		frame, code := seal(c, buf[:0], line.Bytes())
		if code != msg.ErrUnknown {
			c.Failed++
			ctx.Fail(code, msg.KindSeal)
		} else {
			c.Sealed++
			m, _ := msg.WithPayload(msg.KindLinkTx, frame)
			ctx.Send(m)
		}
	}

	if frame, ok := c.Open.Pop(); ok {
		var buf [msg.MaxPayload]byte
		text, code := open(c, buf[:0], frame.Bytes())
		if code != msg.ErrUnknown {
			c.Failed++
			ctx.Fail(code, msg.KindLinkRx)
		} else {
			c.Opened++
			m, _ := msg.WithPayload(msg.KindChatRecv, text)
			ctx.Send(m)
		}
	}
}

// seal appends the frame for text to dst. It returns ErrUnknown on success.
func seal(c *state.Crypto, dst, text []byte) ([]byte, msg.ErrCode) {
	if c.AEAD == nil {
		return nil, msg.ErrAuth
	}
	if len(text) > msg.MaxText || len(text)+Overhead > msg.MaxPayload {
		return nil, msg.ErrTooLarge
	}
	var nonce [NonceSize]byte
	copy(nonce[:4], c.Salt[:])
	binary.BigEndian.PutUint64(nonce[4:], c.Seq)
	c.Seq++

	dst = append(dst, nonce[:]...)
	return c.AEAD.Seal(dst, nonce[:], text, nil), msg.ErrUnknown
}

// open appends the plain text of frame to dst.
func open(c *state.Crypto, dst, frame []byte) ([]byte, msg.ErrCode) {
	if len(frame) < Overhead {
		return nil, msg.ErrBadFrame
	}
	if c.AEAD == nil {
		return nil, msg.ErrAuth
	}
	text, err := c.AEAD.Open(dst, frame[:NonceSize], frame[NonceSize:], nil)
	if err != nil {
		return nil, msg.ErrAuth
	}
	return text, msg.ErrUnknown
}
