package hooks

// zshPrelude loads zsh's bash completion compatibility layer, which provides
// `complete -C` and the COMP_LINE and COMP_POINT variables.
var zshPrelude = []string{
	"autoload -U +X compinit && compinit",
	"autoload -U +X bashcompinit && bashcompinit",
}

// Zsh reuses the bash registrations on top of bashcompinit.
type Zsh struct {
	Bash
}

// GenerateCompletionCommands implements CompletableShell.
func (z *Zsh) GenerateCompletionCommands(schemaDir string) ([]string, error) {
	registrations, err := generateForDirectory(schemaDir, z.log(), z.GenerateCompletionsFromSchema)
	if err != nil {
		return nil, err
	}

	lines := append(append([]string{}, zshPrelude...), registrations...)
	if err := verifyScript(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// GenerateCompletionsFromSchema implements CompletableShell.
func (z *Zsh) GenerateCompletionsFromSchema(schemaFile string) ([]string, error) {
	line, err := completeCommand(z.Binary, "zsh", schemaFile)
	if err != nil {
		return nil, err
	}
	return []string{line}, nil
}
