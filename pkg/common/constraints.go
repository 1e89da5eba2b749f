package common

import (
	"fmt"
	"log"
	"os"
	"os/user"
	"runtime"

	"github.com/google/cel-go/cel"
)

// Constraints gate whether a job is allowed to daemonize on this host. They
// are CEL boolean expressions evaluated over the job's parameters plus a
// fixed set of host facts, e.g.:
//
//	constraints:
//	  - "uid != 0"            # refuse to daemonize as root
//	  - "hostOS == 'linux'"
//	  - "retries <= 5"        # a declared job parameter

// factTypes declares the host facts available to every constraint, next to
// the job's own parameters. Parameter names must not shadow these.
var factTypes = map[string]*cel.Type{
	"uid":      cel.IntType,
	"gid":      cel.IntType,
	"pid":      cel.IntType,
	"hostOS":   cel.StringType,
	"hostname": cel.StringType,
	"username": cel.StringType,
}

// HostFacts returns the current values for the fact variables.
func HostFacts() map[string]interface{} {
	hostname, _ := os.Hostname()
	username := ""
	if u, err := user.Current(); err == nil {
		username = u.Username
	}
	return map[string]interface{}{
		"uid":      os.Getuid(),
		"gid":      os.Getgid(),
		"pid":      os.Getpid(),
		"hostOS":   runtime.GOOS,
		"hostname": hostname,
		"username": username,
	}
}

// CompiledConstraints holds the compiled CEL programs for a job's constraints
type CompiledConstraints struct {
	programs []cel.Program
	logger   *log.Logger
}

// NewCompiledConstraints compiles a list of CEL constraint expressions
// paramTypes is a map of parameter names to their types
// logger is required for logging constraint compilation and evaluation information
func NewCompiledConstraints(constraints []string, paramTypes map[string]ParamConfig, logger *log.Logger) (*CompiledConstraints, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for constraint compilation")
	}

	if len(constraints) == 0 {
		logger.Println("No constraints to compile")
		return &CompiledConstraints{logger: logger}, nil
	}

	var envOpts []cel.EnvOption

	for name, typ := range factTypes {
		envOpts = append(envOpts, cel.Variable(name, typ))
	}

	// Add parameter declarations based on their types
	for name, param := range paramTypes {
		if _, reserved := factTypes[name]; reserved {
			return nil, fmt.Errorf("parameter name %q shadows a built-in host fact", name)
		}

		paramType := param.Type
		if paramType == "" {
			paramType = "string"
		}

		switch paramType {
		case "string":
			envOpts = append(envOpts, cel.Variable(name, cel.StringType))
		case "number":
			envOpts = append(envOpts, cel.Variable(name, cel.DoubleType))
		case "integer":
			envOpts = append(envOpts, cel.Variable(name, cel.IntType))
		case "boolean":
			envOpts = append(envOpts, cel.Variable(name, cel.BoolType))
		default:
			return nil, fmt.Errorf("unsupported parameter type for CEL: %s", paramType)
		}
	}

	env, err := cel.NewEnv(envOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	// Compile each constraint expression
	var programs []cel.Program
	for _, expr := range constraints {
		ast, issues := env.Compile(expr)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("failed to compile constraint '%s': %w", expr, issues.Err())
		}

		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("failed to create program for constraint '%s': %w", expr, err)
		}

		programs = append(programs, prg)
	}

	return &CompiledConstraints{
		programs: programs,
		logger:   logger,
	}, nil
}

// Evaluate evaluates all compiled constraints against the provided arguments
// and the current host facts. Returns true only if every constraint passes.
//
// Parameters:
//   - args: Map of argument names to their values
//   - paramTypes: Map of parameter names to their type configurations
//
// Returns:
//   - true if all constraints pass, false otherwise
//   - error if evaluation fails
func (cc *CompiledConstraints) Evaluate(args map[string]interface{}, paramTypes map[string]ParamConfig) (bool, error) {
	if cc == nil {
		return true, nil
	}

	if len(cc.programs) == 0 {
		// If there are no constraints, evaluation passes by default
		cc.logger.Println("No constraints to evaluate, passing by default")
		return true, nil
	}

	cc.logger.Printf("Evaluating %d constraints", len(cc.programs))

	evalArgs := HostFacts()
	for k, v := range args {
		evalArgs[k] = v
		cc.logger.Printf("Argument provided: %s = %v", k, v)
	}

	// Ensure all parameters have at least empty values if not provided
	for name, param := range paramTypes {
		if _, exists := evalArgs[name]; !exists {
			switch param.Type {
			case "string", "":
				evalArgs[name] = ""
			case "number":
				evalArgs[name] = 0.0
			case "integer":
				evalArgs[name] = int64(0)
			case "boolean":
				evalArgs[name] = false
			}
		}
	}

	// Evaluate each constraint program
	for i, prg := range cc.programs {
		cc.logger.Printf("Evaluating constraint #%d", i+1)
		val, _, err := prg.Eval(evalArgs)
		if err != nil {
			cc.logger.Printf("Constraint #%d evaluation error: %v", i+1, err)
			return false, fmt.Errorf("constraint evaluation error: %w", err)
		}

		boolVal, ok := val.Value().(bool)
		if !ok {
			cc.logger.Printf("Constraint #%d did not evaluate to a boolean", i+1)
			return false, fmt.Errorf("constraint did not evaluate to a boolean")
		}

		if !boolVal {
			// If any constraint fails, the evaluation fails
			cc.logger.Printf("Constraint #%d failed evaluation", i+1)
			return false, nil
		}

		cc.logger.Printf("Constraint #%d passed evaluation", i+1)
	}

	cc.logger.Println("All constraints passed evaluation")
	return true, nil
}
