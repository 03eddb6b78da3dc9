package config

// ModuleFileExtensions are the recognized extensions of YAML module fixtures.
var ModuleFileExtensions = []string{".yaml", ".yml"}

// DefaultConfigFile is looked up in the working directory when -config is not given.
const DefaultConfigFile = "semcore.yaml"

// IsTestMode indicates if the program is running under go test.
// Type printing stays stable regardless, but the emitter never colours output in test mode.
var IsTestMode = false

// Built-in primitive type names
const (
	I8TypeName   = "i8"
	I16TypeName  = "i16"
	I32TypeName  = "i32"
	I64TypeName  = "i64"
	U8TypeName   = "u8"
	U16TypeName  = "u16"
	U32TypeName  = "u32"
	U64TypeName  = "u64"
	F32TypeName  = "f32"
	F64TypeName  = "f64"
	BoolTypeName = "bool"
	CharTypeName = "char"
	UnitTypeName = "unit"
)

// Default types for unsuffixed literals
const (
	DefaultIntLiteralType   = I32TypeName
	DefaultFloatLiteralType = F32TypeName
)

// PointerSize is the size in bytes of pointers, references and function values.
const PointerSize = 8

// CharSize is the size in bytes of a character (one code point).
const CharSize = 4

// VariantTagSize is the size in bytes of a variant value (its case tag).
const VariantTagSize = 4
