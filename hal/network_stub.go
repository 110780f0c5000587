package hal

// nullNetwork is a board without a radio. Nothing is ever received and
// every send fails.
type nullNetwork struct{}

func (nullNetwork) Send(pkt []byte) error {
	_ = pkt
	return ErrNotImplemented
}

func (nullNetwork) Recv(pkt []byte) (int, error) {
	_ = pkt
	return 0, nil
}
