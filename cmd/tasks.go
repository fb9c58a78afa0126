package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/studentos/internal/tasks"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Show and edit today's study plan",
	Run:   listTasks,
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the study plan",
	Run:   listTasks,
}

func listTasks(cmd *cobra.Command, _ []string) {
	ctx := context.Background()
	s := newSession(ctx)
	defer s.Close()

	printTasks(cmd.OutOrStdout(), s.tasks.Get(ctx))
}

var tasksAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a task for today",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		duration, _ := cmd.Flags().GetString("duration")
		editTasks(cmd, func(list tasks.List) (tasks.List, error) {
			next, _, err := list.Add(strings.Join(args, " "), duration)
			return next, err
		})
	},
}

var tasksEditCmd = &cobra.Command{
	Use:   "edit ID TITLE",
	Short: "Replace a task's title and duration",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		duration, _ := cmd.Flags().GetString("duration")
		editTasks(cmd, func(list tasks.List) (tasks.List, error) {
			return list.Replace(args[0], strings.Join(args[1:], " "), duration)
		})
	},
}

var tasksRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editTasks(cmd, func(list tasks.List) (tasks.List, error) {
			return list.Remove(args[0])
		})
	},
}

var tasksTomorrowCmd = &cobra.Command{
	Use:   "tomorrow ID",
	Short: "Move a task to tomorrow",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editTasks(cmd, func(list tasks.List) (tasks.List, error) {
			return list.MoveToTomorrow(args[0])
		})
	},
}

var tasksNudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Print a short focus message for today's pending tasks",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		offline, _ := cmd.Flags().GetBool("no-ai")
		adapter := s.newAdapter(ctx, offline)
		fmt.Fprintln(cmd.OutOrStdout(), adapter.StudyNudge(ctx, s.profiles.Get(ctx), s.tasks.Get(ctx)))
	},
}

func statusCmd(status tasks.Status) *cobra.Command {
	return &cobra.Command{
		Use:   string(status) + " ID",
		Short: fmt.Sprintf("Mark a task as %s", status),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			editTasks(cmd, func(list tasks.List) (tasks.List, error) {
				return list.SetStatus(args[0], status)
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(tasksListCmd, tasksAddCmd, tasksEditCmd, tasksRemoveCmd, tasksTomorrowCmd, tasksNudgeCmd)
	for _, status := range tasks.Statuses {
		tasksCmd.AddCommand(statusCmd(status))
	}

	tasksAddCmd.Flags().String("duration", "", "optional duration, e.g. 45m")
	tasksEditCmd.Flags().String("duration", "", "optional duration, e.g. 45m")
	tasksNudgeCmd.Flags().Bool("no-ai", false, "skip generation and use the offline message")
}

// editTasks loads the plan, applies edit, saves and prints the result.
func editTasks(cmd *cobra.Command, edit func(tasks.List) (tasks.List, error)) {
	ctx := context.Background()
	s := newSession(ctx)
	defer s.Close()

	list, err := edit(s.tasks.Get(ctx))
	if err != nil {
		s.logger.Fatal("updating tasks", zap.Error(err))
	}
	if err := s.tasks.Set(ctx, list); err != nil {
		s.logger.Fatal("saving tasks", zap.Error(err))
	}
	printTasks(cmd.OutOrStdout(), list)
}
