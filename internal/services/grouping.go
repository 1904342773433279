package services

import (
	"sort"

	"github.com/yukikurage/student-task-tracker/internal/models"
)

// DeadlineGroup holds the tasks sharing one deadline.
type DeadlineGroup struct {
	Deadline models.Date
	Tasks    []models.Task
}

// GroupByDeadline partitions tasks by exact deadline. Groups come out in
// ascending date order and keep the input order of their tasks.
func GroupByDeadline(tasks []models.Task) []DeadlineGroup {
	index := make(map[string]int)
	var groups []DeadlineGroup
	for _, task := range tasks {
		key := task.Deadline.String()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DeadlineGroup{Deadline: task.Deadline})
		}
		groups[i].Tasks = append(groups[i].Tasks, task)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Deadline.Before(groups[j].Deadline)
	})
	return groups
}
