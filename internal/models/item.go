package models

// Goal is a single entry in a user's goal list.
type Goal struct {
	Goal    string `json:"goal"`
	Checked bool   `json:"checked"`
}

// Note is a single entry in a user's note list. The timestamp is
// client-supplied and stored verbatim.
type Note struct {
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Task is a single entry in a user's task list.
type Task struct {
	Task    string `json:"task"`
	Checked bool   `json:"checked"`
}

// Performance summarizes goal completion for a user.
type Performance struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Percent   float64 `json:"percent"`
}
