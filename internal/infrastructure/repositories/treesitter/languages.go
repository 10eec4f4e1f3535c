package treesitter

import (
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/sql"
	"github.com/smacker/go-tree-sitter/swift"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"
)

// Grammars returns every tree-sitter backed grammar.
func Grammars() []*GrammarRepository {
	return []*GrammarRepository{
		NewGrammarRepository("bash", bash.GetLanguage, "bash", "sh"),
		NewGrammarRepository("c", c.GetLanguage, "c"),
		NewGrammarRepository("cpp", cpp.GetLanguage, "cc", "cpp", "h"),
		NewGrammarRepository("csharp", csharp.GetLanguage, "cs"),
		NewGrammarRepository("css", css.GetLanguage, "css"),
		NewGrammarRepository("go", golang.GetLanguage, "go"),
		NewGrammarRepository("html", html.GetLanguage, "htm", "html", "xml"),
		NewGrammarRepository("java", java.GetLanguage, "java"),
		NewGrammarRepository("javascript", javascript.GetLanguage, "js", "jsx"),
		NewGrammarRepository("kotlin", kotlin.GetLanguage, "kt", "kts"),
		NewGrammarRepository("php", php.GetLanguage, "php", "phtml"),
		NewGrammarRepository("python", python.GetLanguage, "py", "pyi"),
		NewGrammarRepository("ruby", ruby.GetLanguage, "rb"),
		NewGrammarRepository("rust", rust.GetLanguage, "rs"),
		NewGrammarRepository("sql", sql.GetLanguage, "sql"),
		NewGrammarRepository("swift", swift.GetLanguage, "swift"),
		NewGrammarRepository("toml", toml.GetLanguage, "toml"),
		NewGrammarRepository("tsx", tsx.GetLanguage, "tsx"),
		NewGrammarRepository("typescript", typescript.GetLanguage, "ts", "d.ts"),
		NewGrammarRepository("yaml", yaml.GetLanguage, "yaml", "yml"),
	}
}
