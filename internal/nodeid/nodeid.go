// Package nodeid derives the host simulator's link identity.
package nodeid

import (
	"fmt"

	"github.com/denisbrodbeck/machineid"
)

// Len matches the sender prefix of a link packet.
const Len = 8

// appID keys the machine id hash so the raw id never leaves the host.
const appID = "neo-ui"

// FromMachine returns a stable id for this machine, shifted by instance
// so several simulators on one host get distinct ids.
func FromMachine(instance int) (string, error) {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		return "", fmt.Errorf("nodeid: %w", err)
	}
	return Derive(id, instance), nil
}

// Derive folds a hex machine id and an instance number into Len
// lower-case hex characters.
func Derive(id string, instance int) string {
	var h uint32 = 2166136261
	for i := 0; i < len(id); i++ {
		h ^= uint32(id[i])
		h *= 16777619
	}
	h ^= uint32(instance)
	h *= 16777619
	return fmt.Sprintf("%08x", h)
}
