package embedded

import (
	_ "embed"
)

// Embed all prompt data files
//
//go:embed data/system_prompt.txt
var SystemPromptTxt []byte

//go:embed data/refinement_instructions.txt
var RefinementInstructionsTxt []byte
