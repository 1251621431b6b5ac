package berclaz

import "github.com/wrede/gbmot/tracklet"

// connectTracks merges tracks that continue each other across batch
// boundaries. For every track, it finds the later track with the smallest
// Compare cost among those starting after it ends, and merges it in. A
// candidate is only accepted on strict improvement, and a found flag
// distinguishes "no valid candidate" from "candidate at index 0".
func connectTracks(tracks []*tracklet.Tracklet) []*tracklet.Tracklet {
	for i := 0; i < len(tracks); i++ {
		bestValue := 0.0
		bestIndex := -1
		found := false

		for k := i + 1; k < len(tracks); k++ {
			if tracks[i].LastFrame() >= tracks[k].FirstFrame() {
				continue
			}
			value, err := tracks[i].Compare(tracks[k])
			if err != nil {
				continue
			}
			if !found || value < bestValue {
				bestValue = value
				bestIndex = k
				found = true
			}
		}

		if !found {
			continue
		}

		if err := tracks[i].Combine(tracks[bestIndex]); err != nil {
			continue
		}
		tracks = append(tracks[:bestIndex], tracks[bestIndex+1:]...)
	}

	return tracks
}
