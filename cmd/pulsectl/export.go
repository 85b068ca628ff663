package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/orgpulse/orgpulse/pkg/db"
	"github.com/orgpulse/orgpulse/pkg/model"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a survey's responses to CSV",
	Long: `Export every answer for a survey as CSV, in the same column layout
as the API export endpoint. Writes to STDOUT unless --out is given.

Example:
  pulsectl export --survey 4f1c...
  pulsectl export --survey 4f1c... --out responses.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		surveyID, _ := cmd.Flags().GetString("survey")
		outPath, _ := cmd.Flags().GetString("out")

		if err := runExport(surveyID, outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("survey", "s", "", "Survey ID (required)")
	exportCmd.Flags().StringP("out", "o", "", "Output file (default: STDOUT)")
	_ = exportCmd.MarkFlagRequired("survey")
}

func runExport(surveyID, outPath string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	var record model.Survey
	if err := database.First(&record, "id = ?", surveyID).Error; err != nil {
		return fmt.Errorf("survey %s not found", surveyID)
	}

	var questions []model.SurveyQuestion
	if err := database.Where("survey_id = ?", surveyID).Order("order_index").Find(&questions).Error; err != nil {
		return err
	}
	questionText := make(map[string]string, len(questions))
	for _, q := range questions {
		questionText[q.ID] = q.Text
	}

	var answers []model.Answer
	if err := database.
		Joins("JOIN responses ON responses.id = answers.response_id").
		Where("responses.survey_id = ?", surveyID).
		Order("responses.submitted_at, answers.question_id").
		Find(&answers).Error; err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	writer := csv.NewWriter(out)
	if err := writer.Write([]string{"response_id", "question", "value", "rating", "comment"}); err != nil {
		return err
	}
	for _, a := range answers {
		rating := ""
		if a.Rating != nil {
			rating = strconv.Itoa(*a.Rating)
		}
		if err := writer.Write([]string{a.ResponseID, questionText[a.QuestionID], a.Value, rating, a.Comment}); err != nil {
			return err
		}
	}
	writer.Flush()

	if outPath != "" {
		fmt.Fprintf(os.Stderr, "Exported %d answers from survey '%s' to %s\n", len(answers), record.Title, outPath)
	}

	return writer.Error()
}
