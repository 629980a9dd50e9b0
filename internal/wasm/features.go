package wasm

import (
	"fmt"
	"strings"
)

// Features are the currently enabled features.
//
// Note: This is a bit flag until we have too many (>63). Flags are simpler to manage in multiple places than a map.
type Features uint64

const (
	// FeatureSignExtensionOps decides if parsing should succeed on the i32.extend8_s family of opcodes.
	//
	// See https://github.com/WebAssembly/spec/blob/main/proposals/sign-extension-ops/Overview.md
	FeatureSignExtensionOps Features = 1 << iota
	// FeatureNonTrappingFloatToIntConversion decides if parsing should succeed on the misc prefix trunc_sat opcodes.
	//
	// See https://github.com/WebAssembly/spec/blob/main/proposals/nontrapping-float-to-int-conversion/Overview.md
	FeatureNonTrappingFloatToIntConversion
	// FeatureMultiValue decides if block types may reference a function type, giving blocks params and more than
	// one result.
	//
	// See https://github.com/WebAssembly/spec/blob/main/proposals/multi-value/Overview.md
	FeatureMultiValue
	// FeatureSIMD decides if parsing should succeed on the vector prefix and the v128 value type.
	//
	// See https://github.com/WebAssembly/simd/blob/main/proposals/simd/SIMD.md
	FeatureSIMD
)

// FeaturesAll enables every feature this module implements.
const FeaturesAll = FeatureSignExtensionOps | FeatureNonTrappingFloatToIntConversion | FeatureMultiValue | FeatureSIMD

// Set assigns the value for the given feature.
func (f Features) Set(feature Features, val bool) Features {
	if val {
		return f | feature
	}
	return f &^ feature
}

// IsEnabled returns true if the feature (or group of features) is enabled.
func (f Features) IsEnabled(feature Features) bool {
	return f&feature != 0
}

// Require fails with a configuration error if the given feature is not enabled
func (f Features) Require(feature Features) error {
	if f&feature == 0 {
		return fmt.Errorf("feature %q is disabled", feature)
	}
	return nil
}

// String implements fmt.Stringer by returning each enabled feature.
func (f Features) String() string {
	var builder strings.Builder
	for i := 0; i <= 63; i++ {
		target := Features(1 << i)
		if f.IsEnabled(target) {
			if name := featureName(target); name != "" {
				if builder.Len() > 0 {
					builder.WriteByte('|')
				}
				builder.WriteString(name)
			}
		}
	}
	return builder.String()
}

func featureName(f Features) string {
	switch f {
	case FeatureSignExtensionOps:
		return "sign-extension-ops"
	case FeatureNonTrappingFloatToIntConversion:
		return "nontrapping-float-to-int-conversion"
	case FeatureMultiValue:
		return "multi-value"
	case FeatureSIMD:
		return "simd"
	}
	return ""
}
