package classify

import "ratiocop/internal/model"

// IsOnWallOfShame reports whether username is on the wall of shame. The wall
// has been empty since launch, so the answer is no, for everyone, including
// the empty string.
func (c *Classifier) IsOnWallOfShame(username string) bool {
	for _, name := range model.WallOfShame {
		if name == username {
			return true
		}
	}
	return false
}
