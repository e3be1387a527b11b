package scene

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ScriptTimeout bounds the evaluation of a single scene script
var ScriptTimeout = 10 * time.Second

// ScriptError is an error raised while parsing or evaluating a scene script
type ScriptError struct {
	Line    int // 1-based source line, or 0 when unknown
	Message string
}

func (e *ScriptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// LoadScriptFile reads and evaluates a scene script. The scene is named after the file.
func LoadScriptFile(path string, logger core.Logger) (*Scene, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene script: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	s, err := EvaluateScript(name, string(source), logger)
	if err != nil {
		return nil, fmt.Errorf("scene script %s: %w", path, err)
	}
	return s, nil
}

type scriptResult struct {
	scene *Scene
	err   error
}

// errScriptStopped unwinds the interpreter once the evaluation context is done
var errScriptStopped = errors.New("scene script stopped")

// EvaluateScript runs scene-script source in a fresh sandbox and returns the
// scene it describes. Errors in the script are returned as *ScriptError.
//
// A script still running after ScriptTimeout is stopped at its next function
// call. A loop that makes no calls runs to completion in the background.
func EvaluateScript(name, source string, logger core.Logger) (*Scene, error) {
	if logger == nil {
		logger = core.NopLogger()
	}

	ctx, cancel := context.WithTimeout(context.Background(), ScriptTimeout)
	defer cancel()

	ch := make(chan scriptResult, 1)
	go func() {
		s, err := evaluateScript(ctx, name, source, logger)
		ch <- scriptResult{scene: s, err: err}
	}()

	select {
	case res := <-ch:
		return res.scene, res.err
	case <-ctx.Done():
		return nil, &ScriptError{Message: fmt.Sprintf("evaluation timed out after %s", ScriptTimeout)}
	}
}

func evaluateScript(ctx context.Context, name, source string, logger core.Logger) (s *Scene, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = nil
			if r == errScriptStopped {
				err = fmt.Errorf("%w: %w", errScriptStopped, ctx.Err())
				return
			}
			err = &ScriptError{Message: fmt.Sprintf("panic during evaluation: %v", r)}
		}
	}()

	s = New(name)
	if strings.TrimSpace(source) == "" {
		return s, nil
	}

	// The sandbox keeps scripts away from the filesystem and system calls
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	env.AddPreHook(func(*zygo.Zlisp, string, []zygo.Sexp) {
		if ctx.Err() != nil {
			panic(errScriptStopped)
		}
	})
	registerSceneBuiltins(env, newScriptBuilder(s, logger))

	if err := env.LoadString(preprocessScript(source)); err != nil {
		return nil, parseScriptError(err)
	}
	if _, err := env.Run(); err != nil {
		return nil, parseScriptError(err)
	}
	return s, nil
}

// lineErrorPattern matches zygomys messages such as "Error on line 3: ..."
var lineErrorPattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// parseScriptError converts a zygomys error into a ScriptError with a line number when one is present
func parseScriptError(err error) *ScriptError {
	msg := err.Error()
	if m := lineErrorPattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &ScriptError{Line: line, Message: strings.TrimSpace(m[2])}
	}
	return &ScriptError{Message: strings.TrimSpace(msg)}
}
