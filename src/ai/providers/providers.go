package providers

import (
	_ "github.com/trustwire/sourcecheck/src/ai/anthropic"
	_ "github.com/trustwire/sourcecheck/src/ai/openai"
)
