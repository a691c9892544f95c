package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"docucortex-be/internal/pkg/logger"
	"docucortex-be/pkg/intent"
	"docucortex-be/pkg/nlp"
)

const debugSessionID = "debug-cli"

func printResult(query string, res *intent.ClassificationResult) {
	color.Cyan("\nQuery: %s", query)
	color.Green("Intent: %s (confidence %.2f)", res.Intent, res.Confidence)
	if res.Description != "" {
		fmt.Printf("  %s\n", res.Description)
	}
	for _, alt := range res.Alternates {
		color.Yellow("  alt: %s (%.2f)", alt.Intent, alt.Score)
	}
	for _, reason := range res.Reasoning {
		fmt.Printf("  - %s\n", reason)
	}
}

func main() {
	log := logger.NewIsolatedLogger("logs/classify_debug.log")
	memory := intent.NewMemory(30 * time.Minute)
	classifier := intent.NewClassifier(nlp.NewExtractor(), memory, log)
	ctx := context.Background()

	// Args mode: classify each argument as a standalone query.
	if len(os.Args) > 1 {
		for _, query := range os.Args[1:] {
			printResult(query, classifier.Classify(ctx, debugSessionID, query))
		}
		return
	}

	// Interactive mode: one query per line, shared session memory so
	// follow-up questions exercise the context boost.
	color.Cyan("🔍 Intent classifier debug console (empty line to quit)")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			break
		}
		printResult(query, classifier.Classify(ctx, debugSessionID, query))
	}
}
