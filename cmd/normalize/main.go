// Command normalize converts a quiz file in any accepted import shape into
// its canonical bilingual form, optionally resolved into one language.
//
//	normalize -subject physics -topic mechanics quiz.json
//	normalize -lang hi < quiz.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/stemsi/quizlingua/internal/i18n"
	"github.com/stemsi/quizlingua/internal/logger"
	"github.com/stemsi/quizlingua/internal/normalize"
	"github.com/stemsi/quizlingua/internal/service"
)

type options struct {
	subjectID  string
	topicID    string
	subTopicID string
	lang       string
	indent     bool
}

// openInput is swapped in tests.
var openInput = func(path string) (io.ReadCloser, error) { return os.Open(path) }

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// realMain returns the process exit code so deferred cleanup runs before exit.
func realMain(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.subjectID, "subject", "", "Subject ID to stamp on the quiz")
	fs.StringVar(&opts.topicID, "topic", "", "Topic ID to stamp on the quiz")
	fs.StringVar(&opts.subTopicID, "subtopic", "", "Sub-topic ID to stamp on the quiz")
	fs.StringVar(&opts.lang, "lang", "", "Resolve the result into this language (en, hi)")
	fs.BoolVar(&opts.indent, "indent", true, "Indent the JSON output")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := logger.New(stderr, "pretty").Level(zerolog.InfoLevel)

	in := stdin
	if path := fs.Arg(0); path != "" && path != "-" {
		f, err := openInput(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Cannot open input")
			return 1
		}
		defer f.Close()
		in = f
	}

	if err := run(in, stdout, opts, log); err != nil {
		log.Error().Err(err).Msg("Normalize failed")
		return 1
	}
	return 0
}

func run(in io.Reader, out io.Writer, opts options, log zerolog.Logger) error {
	dec := json.NewDecoder(in)
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	quiz := normalize.NormalizeIncomingQuiz(payload, opts.subjectID, opts.topicID, opts.subTopicID)
	if !normalize.HasContent(quiz) {
		log.Warn().Msg("Quiz has no text content in any language")
	}
	log.Info().
		Int("questions", len(quiz.Questions)).
		Int("total_points", quiz.TotalPoints).
		Interface("languages", quiz.AvailableLanguages).
		Msg("Normalized")

	var result any = quiz
	if opts.lang != "" {
		lang, ok := i18n.ParseLang(opts.lang)
		if !ok {
			return fmt.Errorf("unsupported language %q", opts.lang)
		}
		localized, err := service.Localize(quiz, lang)
		if err != nil {
			return err
		}
		result = localized
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if opts.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
