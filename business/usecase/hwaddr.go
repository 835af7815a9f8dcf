package usecase

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/forest33/srun/business/entity"
)

const maskedOctet = "ff"

// ResolveHardwareAddress returns the first link-layer address of the interface, masked for the portal
func ResolveHardwareAddress(enum entity.InterfaceEnumerator, name string) (string, error) {
	addrs := enum.Enumerate()[name]
	if len(addrs) == 0 {
		return "", errors.Wrap(entity.ErrInterfaceNotFound, name)
	}
	return MaskHardwareAddress(addrs[0]), nil
}

// MaskHardwareAddress replaces the first two octets with ff:ff.
// The portal expects addresses in this form.
func MaskHardwareAddress(addr string) string {
	octets := strings.Split(addr, ":")
	for i := 0; i < len(octets) && i < 2; i++ {
		octets[i] = maskedOctet
	}
	return strings.Join(octets, ":")
}
