package feed

import (
	"github.com/fitreel/feedcore/internal/catalog"
	"github.com/fitreel/feedcore/internal/models"
)

// Project narrows raw catalog records to their display-ready shape.
// It is total over any decoded record list: no validation is
// performed, absent fields surface as zero values, and source order is
// preserved for both workouts and routines.
func Project(items []catalog.RawWorkout) []models.Workout {
	workouts := make([]models.Workout, 0, len(items))
	for _, item := range items {
		routines := make([]models.Routine, 0, len(item.Routines))
		for _, routine := range item.Routines {
			routines = append(routines, models.Routine{
				ID:            routine.ID,
				Name:          routine.Name,
				VideoDuration: routine.Video.Duration,
				PlaylistURL:   routine.Video.PlaylistURL,
			})
		}

		workouts = append(workouts, models.Workout{
			ID:            item.ID,
			Difficulty:    item.Difficulty,
			Name:          item.Name,
			TotalDuration: item.TotalDuration,
			AvatarURL:     item.User.ProfilePhotoURL,
			Routines:      routines,
		})
	}
	return workouts
}
