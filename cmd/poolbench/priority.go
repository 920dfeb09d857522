package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/parpool/pool"
)

var priorityTasks int

var priorityCmd = &cobra.Command{
	Use:   "priority",
	Short: "Show the start order of prioritized tasks",
	Long: `Queue tasks with random priorities behind a busy worker, then let
the worker go and print the order in which they started.`,
	RunE: runPriority,
}

func init() {
	priorityCmd.Flags().IntVarP(&priorityTasks, "tasks", "n", 10, "Number of tasks to queue")
	rootCmd.AddCommand(priorityCmd)
}

type started struct {
	id       int
	priority float32
}

func runPriority(cmd *cobra.Command, args []string) error {
	if priorityTasks <= 0 {
		return fmt.Errorf("--tasks must be positive, got %d", priorityTasks)
	}

	p := pool.NewPriority(pool.WithWorkerCount(1), pool.WithName("priority-demo"))
	defer p.Close()

	gate := make(chan struct{})
	running := make(chan struct{})
	if _, err := pool.GoPriority(p, 0, func(int) error {
		close(running)
		<-gate
		return nil
	}); err != nil {
		return err
	}
	<-running

	var mu sync.Mutex
	order := make([]started, 0, priorityTasks)
	for id := range priorityTasks {
		priority := float32(rand.IntN(5))
		_, err := pool.GoPriority(p, priority, func(int) error {
			mu.Lock()
			order = append(order, started{id: id, priority: priority})
			mu.Unlock()
			return nil
		})
		if err != nil {
			return err
		}
	}

	close(gate)
	p.Wait()

	_, _ = bold.Printf("Start order of %d tasks on one worker\n", priorityTasks)
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Started", "Task", "Priority")

	ordered := true
	for i, s := range order {
		if i > 0 && s.priority > order[i-1].priority {
			ordered = false
		}
		_ = table.Append([]string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("#%d", s.id),
			fmt.Sprintf("%.0f", s.priority),
		})
	}
	if err := table.Render(); err != nil {
		return err
	}

	if !ordered {
		_, _ = red.Println("✗ tasks did not start in priority order")
		return fmt.Errorf("priority order violated")
	}
	_, _ = green.Println("✓ highest priority first, submission order within a priority")
	return nil
}
