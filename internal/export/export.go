package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/avdeev/task-service/internal/models"
	"github.com/beevik/etree"
)

// TasksXML renders a user's tasks as an indented XML document
func TasksXML(user *models.User, tasks []models.Task) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("tasks")
	root.CreateAttr("owner", user.Username)
	root.CreateAttr("count", strconv.Itoa(len(tasks)))

	for _, task := range tasks {
		el := root.CreateElement("task")
		el.CreateAttr("id", strconv.FormatInt(task.ID, 10))
		el.CreateElement("title").SetText(task.Title)
		el.CreateElement("description").SetText(task.Description)
		el.CreateElement("status").SetText(string(task.Status))
		if task.DueDate != nil {
			el.CreateElement("due_date").SetText(task.DueDate.Format(time.RFC3339))
		}
		el.CreateElement("created_at").SetText(task.CreatedAt.Format(time.RFC3339))
		el.CreateElement("updated_at").SetText(task.UpdatedAt.Format(time.RFC3339))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tasks: %w", err)
	}
	return out, nil
}
