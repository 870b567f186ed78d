package models

import (
	"fmt"
	"strings"
)

// Task is one of the fixed text-transformation operations.
type Task string

const (
	TaskSummarize        Task = "summarize"
	TaskExtractKeyPoints Task = "extract_key_points"
	TaskClassify         Task = "classify"
)

// AllTasks returns the closed set of recognized tasks, in stable order.
func AllTasks() []Task {
	return []Task{TaskSummarize, TaskExtractKeyPoints, TaskClassify}
}

// Valid reports whether t is a member of the recognized task set.
func (t Task) Valid() bool {
	switch t {
	case TaskSummarize, TaskExtractKeyPoints, TaskClassify:
		return true
	}
	return false
}

// PromptName is the key used to look the task's template up in a remote registry.
func (t Task) PromptName() string {
	return "text_processor_" + string(t)
}

// Prompt is a fully built generation request.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Result is the uniform envelope emitted for every invocation.
// Exactly one of Output and Error is non-nil.
type Result struct {
	Success bool    `json:"success"`
	Task    Task    `json:"task"`
	Input   string  `json:"input"`
	Output  *string `json:"output"`
	Error   *string `json:"error"`
}

// SuccessResult builds a success envelope.
func SuccessResult(task Task, input, output string) Result {
	return Result{Success: true, Task: task, Input: input, Output: &output}
}

// FailureResult builds a failure envelope.
func FailureResult(task Task, input, errMsg string) Result {
	return Result{Success: false, Task: task, Input: input, Error: &errMsg}
}

// InvalidTaskMessage names the rejected task and enumerates the valid set.
func InvalidTaskMessage(task Task) string {
	names := make([]string, 0, len(AllTasks()))
	for _, t := range AllTasks() {
		names = append(names, string(t))
	}
	return fmt.Sprintf("invalid task: %s. Available tasks: [%s]", task, strings.Join(names, ", "))
}
