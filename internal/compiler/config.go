package compiler

import (
	"github.com/ulrunner/drc/internal/vfile"
)

// ConfigLogicalName is the virtual tsconfig's stripped identity. No check
// rejects a caller file named "tsconfig"; such a file is served at a
// ".ts" or ".d.ts" virtual path, so it never replaces ConfigPath's
// tsconfig.json.
const ConfigLogicalName = "tsconfig"

// ConfigPath is the fixed absolute virtual path of the synthesized
// tsconfig.json. No ambient project settings leak in: this is the only
// tsconfig the compiler ever sees, and its content is entirely fixed by
// SyntheticTSConfigJSON below (spec §4.2).
var ConfigPath = vfile.Root() + "/tsconfig.json"

// SyntheticTSConfigJSON is the one, fixed tsconfig the Program Assembler
// feeds the UL compiler. Options are pinned per spec §4.2: target =
// latest, module kind = ES modules with top-level import, lib = latest
// standard library only, sourceMap enabled. No project file on disk is
// ever consulted.
const SyntheticTSConfigJSON = `{
  "compilerOptions": {
    "target": "esnext",
    "module": "esnext",
    "moduleResolution": "bundler",
    "lib": ["esnext"],
    "sourceMap": true,
    "strict": true,
    "noEmitOnError": false,
    "isolatedModules": true,
    "skipLibCheck": true,
    "declaration": false
  }
}`
