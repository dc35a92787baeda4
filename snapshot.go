package garage

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xraph/garage/spot"
	"github.com/xraph/garage/types"
)

// Snapshot is the occupancy of a garage at one moment. It seeds New and is
// returned by State, with occupants in check-in order.
type Snapshot struct {
	TotalSpots int         `json:"total_spots" yaml:"total_spots"`
	Occupants  []spot.Spot `json:"occupants" yaml:"occupants"`
}

// snapshotFile is the on-disk form. Timestamps use the display layout:
//
//	total_spots: 3
//	occupants:
//	  - license_plate: HAI
//	    checkin_time: "2024-01-01 00:00:00"
type snapshotFile struct {
	TotalSpots int `yaml:"total_spots"`
	Occupants  []struct {
		LicensePlate string `yaml:"license_plate"`
		CheckinTime  string `yaml:"checkin_time"`
	} `yaml:"occupants"`
}

// LoadSnapshot decodes a YAML snapshot. It does not validate occupancy; New
// does that.
func LoadSnapshot(r io.Reader) (Snapshot, error) {
	var raw snapshotFile
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return Snapshot{}, fmt.Errorf("garage: decode snapshot: %w", err)
	}

	snap := Snapshot{
		TotalSpots: raw.TotalSpots,
		Occupants:  make([]spot.Spot, 0, len(raw.Occupants)),
	}
	for i, o := range raw.Occupants {
		var at time.Time
		if o.CheckinTime != "" {
			t, err := parseSnapshotTime(o.CheckinTime)
			if err != nil {
				return Snapshot{}, fmt.Errorf("garage: occupant %d: %w", i, err)
			}
			at = t
		}
		snap.Occupants = append(snap.Occupants, spot.Spot{
			LicensePlate: o.LicensePlate,
			CheckinTime:  at,
		})
	}
	return snap, nil
}

// LoadSnapshotFile reads a YAML snapshot from path.
func LoadSnapshotFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("garage: open snapshot: %w", err)
	}
	defer f.Close()

	return LoadSnapshot(f)
}

func parseSnapshotTime(s string) (time.Time, error) {
	if t, err := types.ParseTimestamp(s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid checkin_time %q", s)
	}
	return t, nil
}
