package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL string
)

var statusCmd = &cobra.Command{
	Use:   "status [job-id]",
	Short: "Query server status or specific job",
	Long: `Queries the server for job status information.
If no job-id is provided, lists all jobs.
If job-id is provided, shows detailed status for that job.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		url := fmt.Sprintf("%s/api/v1/jobs", serverURL)
		return listJobs(url)
	}

	jobID := args[0]
	url := fmt.Sprintf("%s/api/v1/jobs/%s/status", serverURL, jobID)
	return getJobStatus(url, jobID)
}

func listJobs(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned error: %s", string(body))
	}

	var jobs []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return nil
	}

	fmt.Printf("Found %d job(s):\n\n", len(jobs))
	for _, job := range jobs {
		config, _ := job["config"].(map[string]interface{})
		fmt.Printf("Job ID: %s\n", job["id"])
		fmt.Printf("  State: %s\n", job["state"])
		fmt.Printf("  Input: %v\n", config["inputPath"])
		fmt.Printf("  Stage: %v/%v", job["stageIndex"], job["totalStages"])
		if t, ok := job["stageType"].(string); ok && t != "" {
			fmt.Printf(" (%s)", t)
		}
		fmt.Println()
		if errMsg, ok := job["error"].(string); ok && errMsg != "" {
			fmt.Printf("  Error: %s\n", errMsg)
		}
		fmt.Println()
	}

	return nil
}

func getJobStatus(url, jobID string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("job not found: %s", jobID)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned error: %s", string(body))
	}

	var status map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Printf("Job: %s\n", status["id"])
	fmt.Printf("State: %s\n", status["state"])
	fmt.Println()

	config, _ := status["config"].(map[string]interface{})
	fmt.Println("Configuration:")
	fmt.Printf("  Input: %v\n", config["inputPath"])
	if stages, ok := config["stages"].([]interface{}); ok {
		fmt.Printf("  Stages: %v\n", stages)
	}
	fmt.Println()

	fmt.Println("Progress:")
	fmt.Printf("  Stage: %v/%v", status["stageIndex"], status["totalStages"])
	if t, ok := status["stageType"].(string); ok && t != "" {
		fmt.Printf(" (%s)", t)
	}
	fmt.Println()

	if outputPath, ok := status["outputPath"].(string); ok && outputPath != "" {
		fmt.Printf("  Output: %s\n", outputPath)
	}

	if startRaw, ok := status["startTime"].(string); ok && startRaw != "" {
		if start, err := time.Parse(time.RFC3339, startRaw); err == nil {
			if endRaw, ok := status["endTime"].(string); ok && endRaw != "" {
				if end, err := time.Parse(time.RFC3339, endRaw); err == nil {
					fmt.Printf("  Elapsed: %s\n", end.Sub(start).Round(time.Millisecond))
				}
			} else {
				fmt.Printf("  Elapsed: %s (running)\n", time.Since(start).Round(time.Millisecond))
			}
		}
	}

	if errMsg, ok := status["error"].(string); ok && errMsg != "" {
		fmt.Printf("\nError: %s\n", errMsg)
	}

	return nil
}
