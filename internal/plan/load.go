package plan

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// LoadStage identifies which step of Load failed.
type LoadStage string

const (
	StageNotFound LoadStage = "not_found"
	StageScan     LoadStage = "scan"
	StageNoFiles  LoadStage = "no_files"
	StageLoad     LoadStage = "load"
	StageBuild    LoadStage = "build"
)

// LoadError represents an error that occurred before plans were compiled.
type LoadError struct {
	Stage   LoadStage
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Load reads every .cue file in dir as one CUE package and compiles its
// queries. Returns *LoadError for filesystem and CUE evaluation problems
// and *CompileError for invalid queries.
func Load(dir string) ([]Plan, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Stage: StageNotFound, Message: fmt.Sprintf("plan directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Stage: StageNotFound, Message: fmt.Sprintf("error accessing plan directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Stage: StageNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Stage: StageScan, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &LoadError{Stage: StageNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Stage: StageLoad, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Stage: StageLoad, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := cuecontext.New().BuildInstance(inst)
	if err := value.Err(); err != nil {
		loadErr := &LoadError{Stage: StageBuild, Message: fmt.Sprintf("building CUE value: %v", err)}
		if ce, ok := formatCUEError(err).(*CompileError); ok {
			loadErr.Pos = ce.Pos
		}
		return nil, loadErr
	}

	return CompileAll(value)
}

// FindCUEFiles returns the .cue files directly inside dir.
// Subdirectories are not part of the package and are skipped.
func FindCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".cue" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
