package ollama

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"subtrans/internal/language"
)

// lineDelimiter stands in for newlines inside a segment so each segment
// stays on one numbered line for the round trip to the model.
const lineDelimiter = " || "

const delimiterInstruction = ` Keep " || " delimiters in the same positions.`

func preserveLineBreaks(text string) string {
	return strings.ReplaceAll(text, "\n", lineDelimiter)
}

func restoreLineBreaks(text string) string {
	return strings.ReplaceAll(text, lineDelimiter, "\n")
}

// isTranslateGemma reports whether the model gets the TranslateGemma
// prompt format instead of the generic one.
func isTranslateGemma(model string) bool {
	return strings.Contains(strings.ToLower(model), "translategemma")
}

func singlePrompt(model, text string, source, target language.Language) string {
	hasDelims := strings.Contains(text, lineDelimiter)
	instruction := ""
	if hasDelims {
		instruction = delimiterInstruction
	}
	if isTranslateGemma(model) {
		return fmt.Sprintf(
			"You are a professional %s (%s) to %s (%s) translator. Your goal is to accurately convey the meaning and nuances of the original %s text while adhering to %s grammar, vocabulary, and cultural sensitivities. Produce only the %s translation, without any additional explanations or commentary.%s\n\n%s",
			source.PromptName(), source.Code, target.PromptName(), target.Code,
			source.PromptName(), target.PromptName(), target.PromptName(),
			instruction, text,
		)
	}
	if hasDelims {
		return fmt.Sprintf(
			"Translate the following from %s to %s. Only output the translation.%s\n\n%s",
			source.PromptName(), target.PromptName(), instruction, text,
		)
	}
	return fmt.Sprintf(
		"Translate the following from %s to %s. Only output the translation, nothing else:\n\n%s",
		source.PromptName(), target.PromptName(), text,
	)
}

func batchPrompt(model string, texts []string, source, target language.Language) string {
	numbered := make([]string, len(texts))
	hasDelims := false
	for i, text := range texts {
		numbered[i] = strconv.Itoa(i+1) + ". " + text
		if strings.Contains(text, lineDelimiter) {
			hasDelims = true
		}
	}
	lines := strings.Join(numbered, "\n")

	instruction := ""
	if hasDelims {
		instruction = delimiterInstruction
	}

	if isTranslateGemma(model) {
		return fmt.Sprintf(
			"You are a professional %s (%s) to %s (%s) translator. Your goal is to accurately convey the meaning and nuances of the original %s text while adhering to %s grammar, vocabulary, and cultural sensitivities.\n\nTranslate each numbered line below. Return ONLY the translations with the same line numbers. Keep the exact format \"N. translation\".%s\n\n%s",
			source.PromptName(), source.Code, target.PromptName(), target.Code,
			source.PromptName(), target.PromptName(),
			instruction, lines,
		)
	}
	return fmt.Sprintf(
		"Translate each line from %s to %s.\nReturn ONLY the translations with the same line numbers. Keep the exact format \"N. translation\".%s\n\n%s",
		source.PromptName(), target.PromptName(), instruction, lines,
	)
}

var numberedLine = regexp.MustCompile(`^(\d+)\.\s*(.+)$`)

// parseNumbered extracts "N. translation" lines from a model response.
// Lines without a number prefix are skipped; duplicate numbers keep the
// first occurrence.
func parseNumbered(response string) map[int]string {
	out := make(map[int]string)
	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		match := numberedLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		num, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if _, exists := out[num]; exists {
			continue
		}
		out[num] = strings.TrimSpace(match[2])
	}
	return out
}
