package agent

import (
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

func Platform() (string, string, string) {
	osName, _, osVersion, err := host.PlatformInformation()
	if err != nil {
		panic(err)
	}

	arch, err := host.KernelArch()
	if err != nil {
		panic(err)
	}

	return osName, osVersion, arch
}

// SystemConstraints describes the host for agent matching. A spec
// resolved here only makes sense on an agent with the same values.
func SystemConstraints() map[string]string {
	osName, osVersion, arch := Platform()

	constraints := map[string]string{
		"machine/arch": arch,
		"os/name":      osName,
	}

	if osName == "darwin" {
		// Strip off the minor version
		dot := strings.LastIndexByte(osVersion, '.')
		if dot != -1 {
			osVersion = osVersion[:dot]
		}

		constraints["darwin/version"] = osVersion
	}

	return constraints
}

func (l *Local) Constraints() map[string]string {
	constraints := SystemConstraints()
	constraints["cairn/workspace"] = l.dir

	return constraints
}
