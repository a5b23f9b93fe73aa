package plan

// Prescription is one exercise's slot on a training day template:
// how many sets of how many reps at what weight, with how much rest.
type Prescription struct {
	ExerciseID  string  `json:"exerciseId"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
	RestSeconds int     `json:"restSeconds"`
}

// FieldChanges carries only the fields that actually changed between the
// old and the new prescription of an exercise. Nil means unchanged.
type FieldChanges struct {
	Sets        *int     `json:"sets,omitempty"`
	Reps        *int     `json:"reps,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	RestSeconds *int     `json:"restSeconds,omitempty"`
}

func (fc FieldChanges) IsEmpty() bool {
	return fc.Sets == nil && fc.Reps == nil && fc.Weight == nil && fc.RestSeconds == nil
}

type ModifiedExercise struct {
	ExerciseID string       `json:"exerciseId"`
	Old        Prescription `json:"old"`
	New        Prescription `json:"new"`
	Changes    FieldChanges `json:"changes"`
}

// PlanDiff is the per-exercise difference between the old and the new
// template of one training day.
type PlanDiff struct {
	TrainingDayID     int                `json:"trainingDayId"`
	AddedExercises    []Prescription     `json:"addedExercises"`
	RemovedExercises  []string           `json:"removedExercises"`
	ModifiedExercises []ModifiedExercise `json:"modifiedExercises"`
}

func (d PlanDiff) IsEmpty() bool {
	return len(d.AddedExercises) == 0 &&
		len(d.RemovedExercises) == 0 &&
		len(d.ModifiedExercises) == 0
}

// Diff matches old and new prescriptions by exercise ID and reports which
// exercises were added, removed, or modified. A modified record carries
// only the changed fields.
func Diff(trainingDayID int, oldPrescriptions, newPrescriptions []Prescription) PlanDiff {
	diff := PlanDiff{TrainingDayID: trainingDayID}

	old2prescription := make(map[string]Prescription, len(oldPrescriptions))
	for _, p := range oldPrescriptions {
		old2prescription[p.ExerciseID] = p
	}
	new2prescription := make(map[string]Prescription, len(newPrescriptions))
	for _, p := range newPrescriptions {
		new2prescription[p.ExerciseID] = p
	}

	for _, oldP := range oldPrescriptions {
		if _, stillThere := new2prescription[oldP.ExerciseID]; !stillThere {
			diff.RemovedExercises = append(diff.RemovedExercises, oldP.ExerciseID)
		}
	}

	for _, newP := range newPrescriptions {
		oldP, existed := old2prescription[newP.ExerciseID]
		if !existed {
			diff.AddedExercises = append(diff.AddedExercises, newP)
			continue
		}

		changes := prescriptionChanges(oldP, newP)
		if changes.IsEmpty() {
			continue
		}
		diff.ModifiedExercises = append(diff.ModifiedExercises, ModifiedExercise{
			ExerciseID: newP.ExerciseID,
			Old:        oldP,
			New:        newP,
			Changes:    changes,
		})
	}

	return diff
}

func prescriptionChanges(oldP, newP Prescription) FieldChanges {
	var changes FieldChanges
	if oldP.Sets != newP.Sets {
		changes.Sets = &newP.Sets
	}
	if oldP.Reps != newP.Reps {
		changes.Reps = &newP.Reps
	}
	if oldP.Weight != newP.Weight {
		changes.Weight = &newP.Weight
	}
	if oldP.RestSeconds != newP.RestSeconds {
		changes.RestSeconds = &newP.RestSeconds
	}
	return changes
}
