package wasm

// OpcodeVec represents an opcode of a 128-bit SIMD instruction, which has
// multi-byte encoding and is prefixed by OpcodeVecPrefix.
//
// The numbering is that of the final SIMD proposal.
// See https://github.com/WebAssembly/simd/blob/main/proposals/simd/BinarySIMD.md
type OpcodeVec = byte

const (
	OpcodeVecV128Load                  OpcodeVec = 0x00
	OpcodeVecV128Load8x8S              OpcodeVec = 0x01
	OpcodeVecV128Load8x8U              OpcodeVec = 0x02
	OpcodeVecV128Load16x4S             OpcodeVec = 0x03
	OpcodeVecV128Load16x4U             OpcodeVec = 0x04
	OpcodeVecV128Load32x2S             OpcodeVec = 0x05
	OpcodeVecV128Load32x2U             OpcodeVec = 0x06
	OpcodeVecV128Load8Splat            OpcodeVec = 0x07
	OpcodeVecV128Load16Splat           OpcodeVec = 0x08
	OpcodeVecV128Load32Splat           OpcodeVec = 0x09
	OpcodeVecV128Load64Splat           OpcodeVec = 0x0a
	OpcodeVecV128Store                 OpcodeVec = 0x0b
	OpcodeVecV128Const                 OpcodeVec = 0x0c
	OpcodeVecI8x16Shuffle              OpcodeVec = 0x0d
	OpcodeVecI8x16Swizzle              OpcodeVec = 0x0e
	OpcodeVecI8x16Splat                OpcodeVec = 0x0f
	OpcodeVecI16x8Splat                OpcodeVec = 0x10
	OpcodeVecI32x4Splat                OpcodeVec = 0x11
	OpcodeVecI64x2Splat                OpcodeVec = 0x12
	OpcodeVecF32x4Splat                OpcodeVec = 0x13
	OpcodeVecF64x2Splat                OpcodeVec = 0x14
	OpcodeVecI8x16ExtractLaneS         OpcodeVec = 0x15
	OpcodeVecI8x16ExtractLaneU         OpcodeVec = 0x16
	OpcodeVecI8x16ReplaceLane          OpcodeVec = 0x17
	OpcodeVecI16x8ExtractLaneS         OpcodeVec = 0x18
	OpcodeVecI16x8ExtractLaneU         OpcodeVec = 0x19
	OpcodeVecI16x8ReplaceLane          OpcodeVec = 0x1a
	OpcodeVecI32x4ExtractLane          OpcodeVec = 0x1b
	OpcodeVecI32x4ReplaceLane          OpcodeVec = 0x1c
	OpcodeVecI64x2ExtractLane          OpcodeVec = 0x1d
	OpcodeVecI64x2ReplaceLane          OpcodeVec = 0x1e
	OpcodeVecF32x4ExtractLane          OpcodeVec = 0x1f
	OpcodeVecF32x4ReplaceLane          OpcodeVec = 0x20
	OpcodeVecF64x2ExtractLane          OpcodeVec = 0x21
	OpcodeVecF64x2ReplaceLane          OpcodeVec = 0x22
	OpcodeVecI8x16Eq                   OpcodeVec = 0x23
	OpcodeVecI8x16Ne                   OpcodeVec = 0x24
	OpcodeVecI8x16LtS                  OpcodeVec = 0x25
	OpcodeVecI8x16LtU                  OpcodeVec = 0x26
	OpcodeVecI8x16GtS                  OpcodeVec = 0x27
	OpcodeVecI8x16GtU                  OpcodeVec = 0x28
	OpcodeVecI8x16LeS                  OpcodeVec = 0x29
	OpcodeVecI8x16LeU                  OpcodeVec = 0x2a
	OpcodeVecI8x16GeS                  OpcodeVec = 0x2b
	OpcodeVecI8x16GeU                  OpcodeVec = 0x2c
	OpcodeVecI16x8Eq                   OpcodeVec = 0x2d
	OpcodeVecI16x8Ne                   OpcodeVec = 0x2e
	OpcodeVecI16x8LtS                  OpcodeVec = 0x2f
	OpcodeVecI16x8LtU                  OpcodeVec = 0x30
	OpcodeVecI16x8GtS                  OpcodeVec = 0x31
	OpcodeVecI16x8GtU                  OpcodeVec = 0x32
	OpcodeVecI16x8LeS                  OpcodeVec = 0x33
	OpcodeVecI16x8LeU                  OpcodeVec = 0x34
	OpcodeVecI16x8GeS                  OpcodeVec = 0x35
	OpcodeVecI16x8GeU                  OpcodeVec = 0x36
	OpcodeVecI32x4Eq                   OpcodeVec = 0x37
	OpcodeVecI32x4Ne                   OpcodeVec = 0x38
	OpcodeVecI32x4LtS                  OpcodeVec = 0x39
	OpcodeVecI32x4LtU                  OpcodeVec = 0x3a
	OpcodeVecI32x4GtS                  OpcodeVec = 0x3b
	OpcodeVecI32x4GtU                  OpcodeVec = 0x3c
	OpcodeVecI32x4LeS                  OpcodeVec = 0x3d
	OpcodeVecI32x4LeU                  OpcodeVec = 0x3e
	OpcodeVecI32x4GeS                  OpcodeVec = 0x3f
	OpcodeVecI32x4GeU                  OpcodeVec = 0x40
	OpcodeVecF32x4Eq                   OpcodeVec = 0x41
	OpcodeVecF32x4Ne                   OpcodeVec = 0x42
	OpcodeVecF32x4Lt                   OpcodeVec = 0x43
	OpcodeVecF32x4Gt                   OpcodeVec = 0x44
	OpcodeVecF32x4Le                   OpcodeVec = 0x45
	OpcodeVecF32x4Ge                   OpcodeVec = 0x46
	OpcodeVecF64x2Eq                   OpcodeVec = 0x47
	OpcodeVecF64x2Ne                   OpcodeVec = 0x48
	OpcodeVecF64x2Lt                   OpcodeVec = 0x49
	OpcodeVecF64x2Gt                   OpcodeVec = 0x4a
	OpcodeVecF64x2Le                   OpcodeVec = 0x4b
	OpcodeVecF64x2Ge                   OpcodeVec = 0x4c
	OpcodeVecV128Not                   OpcodeVec = 0x4d
	OpcodeVecV128And                   OpcodeVec = 0x4e
	OpcodeVecV128Andnot                OpcodeVec = 0x4f
	OpcodeVecV128Or                    OpcodeVec = 0x50
	OpcodeVecV128Xor                   OpcodeVec = 0x51
	OpcodeVecV128Bitselect             OpcodeVec = 0x52
	OpcodeVecV128AnyTrue               OpcodeVec = 0x53
	OpcodeVecV128Load8Lane             OpcodeVec = 0x54
	OpcodeVecV128Load16Lane            OpcodeVec = 0x55
	OpcodeVecV128Load32Lane            OpcodeVec = 0x56
	OpcodeVecV128Load64Lane            OpcodeVec = 0x57
	OpcodeVecV128Store8Lane            OpcodeVec = 0x58
	OpcodeVecV128Store16Lane           OpcodeVec = 0x59
	OpcodeVecV128Store32Lane           OpcodeVec = 0x5a
	OpcodeVecV128Store64Lane           OpcodeVec = 0x5b
	OpcodeVecV128Load32Zero            OpcodeVec = 0x5c
	OpcodeVecV128Load64Zero            OpcodeVec = 0x5d
	OpcodeVecF32x4DemoteF64x2Zero      OpcodeVec = 0x5e
	OpcodeVecF64x2PromoteLowF32x4      OpcodeVec = 0x5f
	OpcodeVecI8x16Abs                  OpcodeVec = 0x60
	OpcodeVecI8x16Neg                  OpcodeVec = 0x61
	OpcodeVecI8x16Popcnt               OpcodeVec = 0x62
	OpcodeVecI8x16AllTrue              OpcodeVec = 0x63
	OpcodeVecI8x16Bitmask              OpcodeVec = 0x64
	OpcodeVecI8x16NarrowI16x8S         OpcodeVec = 0x65
	OpcodeVecI8x16NarrowI16x8U         OpcodeVec = 0x66
	OpcodeVecF32x4Ceil                 OpcodeVec = 0x67
	OpcodeVecF32x4Floor                OpcodeVec = 0x68
	OpcodeVecF32x4Trunc                OpcodeVec = 0x69
	OpcodeVecF32x4Nearest              OpcodeVec = 0x6a
	OpcodeVecI8x16Shl                  OpcodeVec = 0x6b
	OpcodeVecI8x16ShrS                 OpcodeVec = 0x6c
	OpcodeVecI8x16ShrU                 OpcodeVec = 0x6d
	OpcodeVecI8x16Add                  OpcodeVec = 0x6e
	OpcodeVecI8x16AddSatS              OpcodeVec = 0x6f
	OpcodeVecI8x16AddSatU              OpcodeVec = 0x70
	OpcodeVecI8x16Sub                  OpcodeVec = 0x71
	OpcodeVecI8x16SubSatS              OpcodeVec = 0x72
	OpcodeVecI8x16SubSatU              OpcodeVec = 0x73
	OpcodeVecF64x2Ceil                 OpcodeVec = 0x74
	OpcodeVecF64x2Floor                OpcodeVec = 0x75
	OpcodeVecI8x16MinS                 OpcodeVec = 0x76
	OpcodeVecI8x16MinU                 OpcodeVec = 0x77
	OpcodeVecI8x16MaxS                 OpcodeVec = 0x78
	OpcodeVecI8x16MaxU                 OpcodeVec = 0x79
	OpcodeVecF64x2Trunc                OpcodeVec = 0x7a
	OpcodeVecI8x16AvgrU                OpcodeVec = 0x7b
	OpcodeVecI16x8ExtaddPairwiseI8x16S OpcodeVec = 0x7c
	OpcodeVecI16x8ExtaddPairwiseI8x16U OpcodeVec = 0x7d
	OpcodeVecI32x4ExtaddPairwiseI16x8S OpcodeVec = 0x7e
	OpcodeVecI32x4ExtaddPairwiseI16x8U OpcodeVec = 0x7f
	OpcodeVecI16x8Abs                  OpcodeVec = 0x80
	OpcodeVecI16x8Neg                  OpcodeVec = 0x81
	OpcodeVecI16x8Q15mulrSatS          OpcodeVec = 0x82
	OpcodeVecI16x8AllTrue              OpcodeVec = 0x83
	OpcodeVecI16x8Bitmask              OpcodeVec = 0x84
	OpcodeVecI16x8NarrowI32x4S         OpcodeVec = 0x85
	OpcodeVecI16x8NarrowI32x4U         OpcodeVec = 0x86
	OpcodeVecI16x8ExtendLowI8x16S      OpcodeVec = 0x87
	OpcodeVecI16x8ExtendHighI8x16S     OpcodeVec = 0x88
	OpcodeVecI16x8ExtendLowI8x16U      OpcodeVec = 0x89
	OpcodeVecI16x8ExtendHighI8x16U     OpcodeVec = 0x8a
	OpcodeVecI16x8Shl                  OpcodeVec = 0x8b
	OpcodeVecI16x8ShrS                 OpcodeVec = 0x8c
	OpcodeVecI16x8ShrU                 OpcodeVec = 0x8d
	OpcodeVecI16x8Add                  OpcodeVec = 0x8e
	OpcodeVecI16x8AddSatS              OpcodeVec = 0x8f
	OpcodeVecI16x8AddSatU              OpcodeVec = 0x90
	OpcodeVecI16x8Sub                  OpcodeVec = 0x91
	OpcodeVecI16x8SubSatS              OpcodeVec = 0x92
	OpcodeVecI16x8SubSatU              OpcodeVec = 0x93
	OpcodeVecF64x2Nearest              OpcodeVec = 0x94
	OpcodeVecI16x8Mul                  OpcodeVec = 0x95
	OpcodeVecI16x8MinS                 OpcodeVec = 0x96
	OpcodeVecI16x8MinU                 OpcodeVec = 0x97
	OpcodeVecI16x8MaxS                 OpcodeVec = 0x98
	OpcodeVecI16x8MaxU                 OpcodeVec = 0x99
	OpcodeVecI16x8AvgrU                OpcodeVec = 0x9b
	OpcodeVecI16x8ExtmulLowI8x16S      OpcodeVec = 0x9c
	OpcodeVecI16x8ExtmulHighI8x16S     OpcodeVec = 0x9d
	OpcodeVecI16x8ExtmulLowI8x16U      OpcodeVec = 0x9e
	OpcodeVecI16x8ExtmulHighI8x16U     OpcodeVec = 0x9f
	OpcodeVecI32x4Abs                  OpcodeVec = 0xa0
	OpcodeVecI32x4Neg                  OpcodeVec = 0xa1
	OpcodeVecI32x4AllTrue              OpcodeVec = 0xa3
	OpcodeVecI32x4Bitmask              OpcodeVec = 0xa4
	OpcodeVecI32x4ExtendLowI16x8S      OpcodeVec = 0xa7
	OpcodeVecI32x4ExtendHighI16x8S     OpcodeVec = 0xa8
	OpcodeVecI32x4ExtendLowI16x8U      OpcodeVec = 0xa9
	OpcodeVecI32x4ExtendHighI16x8U     OpcodeVec = 0xaa
	OpcodeVecI32x4Shl                  OpcodeVec = 0xab
	OpcodeVecI32x4ShrS                 OpcodeVec = 0xac
	OpcodeVecI32x4ShrU                 OpcodeVec = 0xad
	OpcodeVecI32x4Add                  OpcodeVec = 0xae
	OpcodeVecI32x4Sub                  OpcodeVec = 0xb1
	OpcodeVecI32x4Mul                  OpcodeVec = 0xb5
	OpcodeVecI32x4MinS                 OpcodeVec = 0xb6
	OpcodeVecI32x4MinU                 OpcodeVec = 0xb7
	OpcodeVecI32x4MaxS                 OpcodeVec = 0xb8
	OpcodeVecI32x4MaxU                 OpcodeVec = 0xb9
	OpcodeVecI32x4DotI16x8S            OpcodeVec = 0xba
	OpcodeVecI32x4ExtmulLowI16x8S      OpcodeVec = 0xbc
	OpcodeVecI32x4ExtmulHighI16x8S     OpcodeVec = 0xbd
	OpcodeVecI32x4ExtmulLowI16x8U      OpcodeVec = 0xbe
	OpcodeVecI32x4ExtmulHighI16x8U     OpcodeVec = 0xbf
	OpcodeVecI64x2Abs                  OpcodeVec = 0xc0
	OpcodeVecI64x2Neg                  OpcodeVec = 0xc1
	OpcodeVecI64x2AllTrue              OpcodeVec = 0xc3
	OpcodeVecI64x2Bitmask              OpcodeVec = 0xc4
	OpcodeVecI64x2ExtendLowI32x4S      OpcodeVec = 0xc7
	OpcodeVecI64x2ExtendHighI32x4S     OpcodeVec = 0xc8
	OpcodeVecI64x2ExtendLowI32x4U      OpcodeVec = 0xc9
	OpcodeVecI64x2ExtendHighI32x4U     OpcodeVec = 0xca
	OpcodeVecI64x2Shl                  OpcodeVec = 0xcb
	OpcodeVecI64x2ShrS                 OpcodeVec = 0xcc
	OpcodeVecI64x2ShrU                 OpcodeVec = 0xcd
	OpcodeVecI64x2Add                  OpcodeVec = 0xce
	OpcodeVecI64x2Sub                  OpcodeVec = 0xd1
	OpcodeVecI64x2Mul                  OpcodeVec = 0xd5
	OpcodeVecI64x2Eq                   OpcodeVec = 0xd6
	OpcodeVecI64x2Ne                   OpcodeVec = 0xd7
	OpcodeVecI64x2LtS                  OpcodeVec = 0xd8
	OpcodeVecI64x2GtS                  OpcodeVec = 0xd9
	OpcodeVecI64x2LeS                  OpcodeVec = 0xda
	OpcodeVecI64x2GeS                  OpcodeVec = 0xdb
	OpcodeVecI64x2ExtmulLowI32x4S      OpcodeVec = 0xdc
	OpcodeVecI64x2ExtmulHighI32x4S     OpcodeVec = 0xdd
	OpcodeVecI64x2ExtmulLowI32x4U      OpcodeVec = 0xde
	OpcodeVecI64x2ExtmulHighI32x4U     OpcodeVec = 0xdf
	OpcodeVecF32x4Abs                  OpcodeVec = 0xe0
	OpcodeVecF32x4Neg                  OpcodeVec = 0xe1
	OpcodeVecF32x4Sqrt                 OpcodeVec = 0xe3
	OpcodeVecF32x4Add                  OpcodeVec = 0xe4
	OpcodeVecF32x4Sub                  OpcodeVec = 0xe5
	OpcodeVecF32x4Mul                  OpcodeVec = 0xe6
	OpcodeVecF32x4Div                  OpcodeVec = 0xe7
	OpcodeVecF32x4Min                  OpcodeVec = 0xe8
	OpcodeVecF32x4Max                  OpcodeVec = 0xe9
	OpcodeVecF32x4Pmin                 OpcodeVec = 0xea
	OpcodeVecF32x4Pmax                 OpcodeVec = 0xeb
	OpcodeVecF64x2Abs                  OpcodeVec = 0xec
	OpcodeVecF64x2Neg                  OpcodeVec = 0xed
	OpcodeVecF64x2Sqrt                 OpcodeVec = 0xef
	OpcodeVecF64x2Add                  OpcodeVec = 0xf0
	OpcodeVecF64x2Sub                  OpcodeVec = 0xf1
	OpcodeVecF64x2Mul                  OpcodeVec = 0xf2
	OpcodeVecF64x2Div                  OpcodeVec = 0xf3
	OpcodeVecF64x2Min                  OpcodeVec = 0xf4
	OpcodeVecF64x2Max                  OpcodeVec = 0xf5
	OpcodeVecF64x2Pmin                 OpcodeVec = 0xf6
	OpcodeVecF64x2Pmax                 OpcodeVec = 0xf7
	OpcodeVecI32x4TruncSatF32x4S       OpcodeVec = 0xf8
	OpcodeVecI32x4TruncSatF32x4U       OpcodeVec = 0xf9
	OpcodeVecF32x4ConvertI32x4S        OpcodeVec = 0xfa
	OpcodeVecF32x4ConvertI32x4U        OpcodeVec = 0xfb
	OpcodeVecI32x4TruncSatF64x2SZero   OpcodeVec = 0xfc
	OpcodeVecI32x4TruncSatF64x2UZero   OpcodeVec = 0xfd
	OpcodeVecF64x2ConvertLowI32x4S     OpcodeVec = 0xfe
	OpcodeVecF64x2ConvertLowI32x4U     OpcodeVec = 0xff
)

var vecTable = [256]VecInfo{
	OpcodeVecV128Load:                  {Name: "v128.load", Category: CategoryMemoryRead, Shape: ShapeV128, Width: 16, Load: LoadPlain},
	OpcodeVecV128Load8x8S:              {Name: "v128.load8x8_s", Category: CategoryMemoryRead, Shape: ShapeI16x8, Width: 8, Load: LoadExtend, Signed: true},
	OpcodeVecV128Load8x8U:              {Name: "v128.load8x8_u", Category: CategoryMemoryRead, Shape: ShapeI16x8, Width: 8, Load: LoadExtend},
	OpcodeVecV128Load16x4S:             {Name: "v128.load16x4_s", Category: CategoryMemoryRead, Shape: ShapeI32x4, Width: 8, Load: LoadExtend, Signed: true},
	OpcodeVecV128Load16x4U:             {Name: "v128.load16x4_u", Category: CategoryMemoryRead, Shape: ShapeI32x4, Width: 8, Load: LoadExtend},
	OpcodeVecV128Load32x2S:             {Name: "v128.load32x2_s", Category: CategoryMemoryRead, Shape: ShapeI64x2, Width: 8, Load: LoadExtend, Signed: true},
	OpcodeVecV128Load32x2U:             {Name: "v128.load32x2_u", Category: CategoryMemoryRead, Shape: ShapeI64x2, Width: 8, Load: LoadExtend},
	OpcodeVecV128Load8Splat:            {Name: "v128.load8_splat", Category: CategoryMemoryRead, Shape: ShapeI8x16, Width: 1, Load: LoadSplat},
	OpcodeVecV128Load16Splat:           {Name: "v128.load16_splat", Category: CategoryMemoryRead, Shape: ShapeI16x8, Width: 2, Load: LoadSplat},
	OpcodeVecV128Load32Splat:           {Name: "v128.load32_splat", Category: CategoryMemoryRead, Shape: ShapeI32x4, Width: 4, Load: LoadSplat},
	OpcodeVecV128Load64Splat:           {Name: "v128.load64_splat", Category: CategoryMemoryRead, Shape: ShapeI64x2, Width: 8, Load: LoadSplat},
	OpcodeVecV128Store:                 {Name: "v128.store", Category: CategoryMemoryWrite, Shape: ShapeV128, Width: 16},
	OpcodeVecV128Const:                 {Name: "v128.const", Category: CategoryConst, Shape: ShapeV128},
	OpcodeVecI8x16Shuffle:              {Name: "i8x16.shuffle", Category: CategoryShuffle, Shape: ShapeI8x16, Lowered: true},
	OpcodeVecI8x16Swizzle:              {Name: "i8x16.swizzle", Category: CategoryBinary, Shape: ShapeI8x16},
	OpcodeVecI8x16Splat:                {Name: "i8x16.splat", Category: CategorySplat, Shape: ShapeI8x16},
	OpcodeVecI16x8Splat:                {Name: "i16x8.splat", Category: CategorySplat, Shape: ShapeI16x8},
	OpcodeVecI32x4Splat:                {Name: "i32x4.splat", Category: CategorySplat, Shape: ShapeI32x4},
	OpcodeVecI64x2Splat:                {Name: "i64x2.splat", Category: CategorySplat, Shape: ShapeI64x2},
	OpcodeVecF32x4Splat:                {Name: "f32x4.splat", Category: CategorySplat, Shape: ShapeF32x4},
	OpcodeVecF64x2Splat:                {Name: "f64x2.splat", Category: CategorySplat, Shape: ShapeF64x2},
	OpcodeVecI8x16ExtractLaneS:         {Name: "i8x16.extract_lane_s", Category: CategoryExtractLane, Shape: ShapeI8x16, Signed: true},
	OpcodeVecI8x16ExtractLaneU:         {Name: "i8x16.extract_lane_u", Category: CategoryExtractLane, Shape: ShapeI8x16},
	OpcodeVecI8x16ReplaceLane:          {Name: "i8x16.replace_lane", Category: CategoryReplaceLane, Shape: ShapeI8x16},
	OpcodeVecI16x8ExtractLaneS:         {Name: "i16x8.extract_lane_s", Category: CategoryExtractLane, Shape: ShapeI16x8, Signed: true},
	OpcodeVecI16x8ExtractLaneU:         {Name: "i16x8.extract_lane_u", Category: CategoryExtractLane, Shape: ShapeI16x8},
	OpcodeVecI16x8ReplaceLane:          {Name: "i16x8.replace_lane", Category: CategoryReplaceLane, Shape: ShapeI16x8},
	OpcodeVecI32x4ExtractLane:          {Name: "i32x4.extract_lane", Category: CategoryExtractLane, Shape: ShapeI32x4},
	OpcodeVecI32x4ReplaceLane:          {Name: "i32x4.replace_lane", Category: CategoryReplaceLane, Shape: ShapeI32x4},
	OpcodeVecI64x2ExtractLane:          {Name: "i64x2.extract_lane", Category: CategoryExtractLane, Shape: ShapeI64x2},
	OpcodeVecI64x2ReplaceLane:          {Name: "i64x2.replace_lane", Category: CategoryReplaceLane, Shape: ShapeI64x2},
	OpcodeVecF32x4ExtractLane:          {Name: "f32x4.extract_lane", Category: CategoryExtractLane, Shape: ShapeF32x4},
	OpcodeVecF32x4ReplaceLane:          {Name: "f32x4.replace_lane", Category: CategoryReplaceLane, Shape: ShapeF32x4},
	OpcodeVecF64x2ExtractLane:          {Name: "f64x2.extract_lane", Category: CategoryExtractLane, Shape: ShapeF64x2},
	OpcodeVecF64x2ReplaceLane:          {Name: "f64x2.replace_lane", Category: CategoryReplaceLane, Shape: ShapeF64x2},
	OpcodeVecI8x16Eq:                   {Name: "i8x16.eq", Category: CategoryBinary, Shape: ShapeI8x16},
	OpcodeVecI8x16Ne:                   {Name: "i8x16.ne", Category: CategoryCompareNot, Shape: ShapeI8x16, Lowered: true},
	OpcodeVecI8x16LtS:                  {Name: "i8x16.lt_s", Category: CategoryBinary, Shape: ShapeI8x16, Signed: true},
	OpcodeVecI8x16LtU:                  {Name: "i8x16.lt_u", Category: CategoryBinary, Shape: ShapeI8x16},
	OpcodeVecI8x16GtS:                  {Name: "i8x16.gt_s", Category: CategoryBinary, Shape: ShapeI8x16, Signed: true},
	OpcodeVecI8x16GtU:                  {Name: "i8x16.gt_u", Category: CategoryBinary, Shape: ShapeI8x16},
	OpcodeVecI8x16LeS:                  {Name: "i8x16.le_s", Category: CategoryBinary, Shape: ShapeI8x16, Signed: true},
	OpcodeVecI8x16LeU:                  {Name: "i8x16.le_u", Category: CategoryBinary, Shape: ShapeI8x16},
	OpcodeVecI8x16GeS:                  {Name: "i8x16.ge_s", Category: CategoryBinary, Shape: ShapeI8x16, Signed: true},
	OpcodeVecI8x16GeU:                  {Name: "i8x16.ge_u", Category: CategoryBinary, Shape: ShapeI8x16},
	OpcodeVecI16x8Eq:                   {Name: "i16x8.eq", Category: CategoryBinary, Shape: ShapeI16x8},
	OpcodeVecI16x8Ne:                   {Name: "i16x8.ne", Category: CategoryCompareNot, Shape: ShapeI16x8, Lowered: true},
	OpcodeVecI16x8LtS:                  {Name: "i16x8.lt_s", Category: CategoryBinary, Shape: ShapeI16x8, Signed: true},
	OpcodeVecI16x8LtU:                  {Name: "i16x8.lt_u", Category: CategoryBinary, Shape: ShapeI16x8},
	OpcodeVecI16x8GtS:                  {Name: "i16x8.gt_s", Category: CategoryBinary, Shape: ShapeI16x8, Signed: true},
	OpcodeVecI16x8GtU:                  {Name: "i16x8.gt_u", Category: CategoryBinary, Shape: ShapeI16x8},
	OpcodeVecI16x8LeS:                  {Name: "i16x8.le_s", Category: CategoryBinary, Shape: ShapeI16x8, Signed: true},
	OpcodeVecI16x8LeU:                  {Name: "i16x8.le_u", Category: CategoryBinary, Shape: ShapeI16x8},
	OpcodeVecI16x8GeS:                  {Name: "i16x8.ge_s", Category: CategoryBinary, Shape: ShapeI16x8, Signed: true},
	OpcodeVecI16x8GeU:                  {Name: "i16x8.ge_u", Category: CategoryBinary, Shape: ShapeI16x8},
	OpcodeVecI32x4Eq:                   {Name: "i32x4.eq", Category: CategoryBinary, Shape: ShapeI32x4},
	OpcodeVecI32x4Ne:                   {Name: "i32x4.ne", Category: CategoryCompareNot, Shape: ShapeI32x4, Lowered: true},
	OpcodeVecI32x4LtS:                  {Name: "i32x4.lt_s", Category: CategoryBinary, Shape: ShapeI32x4, Signed: true},
	OpcodeVecI32x4LtU:                  {Name: "i32x4.lt_u", Category: CategoryBinary, Shape: ShapeI32x4},
	OpcodeVecI32x4GtS:                  {Name: "i32x4.gt_s", Category: CategoryBinary, Shape: ShapeI32x4, Signed: true},
	OpcodeVecI32x4GtU:                  {Name: "i32x4.gt_u", Category: CategoryBinary, Shape: ShapeI32x4},
	OpcodeVecI32x4LeS:                  {Name: "i32x4.le_s", Category: CategoryBinary, Shape: ShapeI32x4, Signed: true},
	OpcodeVecI32x4LeU:                  {Name: "i32x4.le_u", Category: CategoryBinary, Shape: ShapeI32x4},
	OpcodeVecI32x4GeS:                  {Name: "i32x4.ge_s", Category: CategoryBinary, Shape: ShapeI32x4, Signed: true},
	OpcodeVecI32x4GeU:                  {Name: "i32x4.ge_u", Category: CategoryBinary, Shape: ShapeI32x4},
	OpcodeVecF32x4Eq:                   {Name: "f32x4.eq", Category: CategoryBinary, Shape: ShapeF32x4},
	OpcodeVecF32x4Ne:                   {Name: "f32x4.ne", Category: CategoryCompareNot, Shape: ShapeF32x4, Lowered: true},
	OpcodeVecF32x4Lt:                   {Name: "f32x4.lt", Category: CategoryBinary, Shape: ShapeF32x4},
	OpcodeVecF32x4Gt:                   {Name: "f32x4.gt", Category: CategoryBinary, Shape: ShapeF32x4},
	OpcodeVecF32x4Le:                   {Name: "f32x4.le", Category: CategoryBinary, Shape: ShapeF32x4},
	OpcodeVecF32x4Ge:                   {Name: "f32x4.ge", Category: CategoryBinary, Shape: ShapeF32x4},
	OpcodeVecF64x2Eq:                   {Name: "f64x2.eq", Category: CategoryBinary, Shape: ShapeF64x2},
	OpcodeVecF64x2Ne:                   {Name: "f64x2.ne", Category: CategoryCompareNot, Shape: ShapeF64x2, Lowered: true},
	OpcodeVecF64x2Lt:                   {Name: "f64x2.lt", Category: CategoryBinary, Shape: ShapeF64x2},
	OpcodeVecF64x2Gt:                   {Name: "f64x2.gt", Category: CategoryBinary, Shape: ShapeF64x2},
	OpcodeVecF64x2Le:                   {Name: "f64x2.le", Category: CategoryBinary, Shape: ShapeF64x2},
	OpcodeVecF64x2Ge:                   {Name: "f64x2.ge", Category: CategoryBinary, Shape: ShapeF64x2},
	OpcodeVecV128Not:                   {Name: "v128.not", Category: CategoryUnary, Shape: ShapeV128},
	OpcodeVecV128And:                   {Name: "v128.and", Category: CategoryBinary, Shape: ShapeV128},
	OpcodeVecV128Andnot:                {Name: "v128.andnot", Category: CategoryBinary, Shape: ShapeV128},
	OpcodeVecV128Or:                    {Name: "v128.or", Category: CategoryBinary, Shape: ShapeV128},
	OpcodeVecV128Xor:                   {Name: "v128.xor", Category: CategoryBinary, Shape: ShapeV128},
	OpcodeVecV128Bitselect:             {Name: "v128.bitselect", Category: CategoryTernary, Shape: ShapeV128},
	OpcodeVecV128AnyTrue:               {Name: "v128.any_true", Category: CategoryReduce, Shape: ShapeV128, Lowered: true},
	OpcodeVecV128Load8Lane:             {Name: "v128.load8_lane", Category: CategoryMemoryLaneRead, Shape: ShapeI8x16, Width: 1},
	OpcodeVecV128Load16Lane:            {Name: "v128.load16_lane", Category: CategoryMemoryLaneRead, Shape: ShapeI16x8, Width: 2},
	OpcodeVecV128Load32Lane:            {Name: "v128.load32_lane", Category: CategoryMemoryLaneRead, Shape: ShapeI32x4, Width: 4},
	OpcodeVecV128Load64Lane:            {Name: "v128.load64_lane", Category: CategoryMemoryLaneRead, Shape: ShapeI64x2, Width: 8},
	OpcodeVecV128Store8Lane:            {Name: "v128.store8_lane", Category: CategoryMemoryLaneWrite, Shape: ShapeI8x16, Width: 1},
	OpcodeVecV128Store16Lane:           {Name: "v128.store16_lane", Category: CategoryMemoryLaneWrite, Shape: ShapeI16x8, Width: 2},
	OpcodeVecV128Store32Lane:           {Name: "v128.store32_lane", Category: CategoryMemoryLaneWrite, Shape: ShapeI32x4, Width: 4},
	OpcodeVecV128Store64Lane:           {Name: "v128.store64_lane", Category: CategoryMemoryLaneWrite, Shape: ShapeI64x2, Width: 8},
	OpcodeVecV128Load32Zero:            {Name: "v128.load32_zero", Category: CategoryMemoryRead, Shape: ShapeI32x4, Width: 4, Load: LoadZero},
	OpcodeVecV128Load64Zero:            {Name: "v128.load64_zero", Category: CategoryMemoryRead, Shape: ShapeI64x2, Width: 8, Load: LoadZero},
	OpcodeVecF32x4DemoteF64x2Zero:      {Name: "f32x4.demote_f64x2_zero", Category: CategoryUnary, Shape: ShapeF32x4},
	OpcodeVecF64x2PromoteLowF32x4:      {Name: "f64x2.promote_low_f32x4", Category: CategoryUnary, Shape: ShapeF64x2},
	OpcodeVecI8x16Abs:                  {Name: "i8x16.abs", Category: CategoryUnary, Shape: ShapeI8x16},
	OpcodeVecI8x16Neg:                  {Name: "i8x16.neg", Category: CategoryUnary, Shape: ShapeI8x16},
	OpcodeVecI8x16Popcnt:               {Name: "i8x16.popcnt", Category: CategoryUnary, Shape: ShapeI8x16, Lowered: true},
	OpcodeVecI8x16AllTrue:              {Name: "i8x16.all_true", Category: CategoryReduce, Shape: ShapeI8x16, Lowered: true},
	OpcodeVecI8x16Bitmask:              {Name: "i8x16.bitmask", Category: CategoryReduce, Shape: ShapeI8x16, Lowered: true},
	OpcodeVecI8x16NarrowI16x8S:         {Name: "i8x16.narrow_i16x8_s", Category: CategoryBinary, Shape: ShapeI8x16, Signed: true},
	OpcodeVecI8x16NarrowI16x8U:         {Name: "i8x16.narrow_i16x8_u", Category: CategoryBinary, Shape: ShapeI8x16},
	OpcodeVecF32x4Ceil:                 {Name: "f32x4.ceil", Category: CategoryUnary, Shape: ShapeF32x4},
	OpcodeVecF32x4Floor:                {Name: "f32x4.floor", Category: CategoryUnary, Shape: ShapeF32x4},
	OpcodeVecF32x4Trunc:                {Name: "f32x4.trunc", Category: CategoryUnary, Shape: ShapeF32x4},
	OpcodeVecF32x4Nearest:              {Name: "f32x4.nearest", Category: CategoryUnary, Shape: ShapeF32x4},
	OpcodeVecI8x16Shl:                  {Name: "i8x16.shl", Category: CategoryShift, Shape: ShapeI8x16},
	OpcodeVecI8x16ShrS:                 {Name: "i8x16.shr_s", Category: CategoryShift, Shape: ShapeI8x16, Signed: true},
	OpcodeVecI8x16ShrU:                 {Name: "i8x16.shr_u", Category: CategoryShift, Shape: ShapeI8x16},
	OpcodeVecI8x16Add:                  {Name: "i8x16.add", Category: CategoryBinary, Shape: ShapeI8x16},
	OpcodeVecI8x16AddSatS:              {Name: "i8x16.add_sat_s", Category: CategoryBinary, Shape: ShapeI8x16, Signed: true, Lowered: true},
	OpcodeVecI8x16AddSatU:              {Name: "i8x16.add_sat_u", Category: CategoryBinary, Shape: ShapeI8x16, Lowered: true},
	OpcodeVecI8x16Sub:                  {Name: "i8x16.sub", Category: CategoryBinary, Shape: ShapeI8x16},
	OpcodeVecI8x16SubSatS:              {Name: "i8x16.sub_sat_s", Category: CategoryBinary, Shape: ShapeI8x16, Signed: true, Lowered: true},
	OpcodeVecI8x16SubSatU:              {Name: "i8x16.sub_sat_u", Category: CategoryBinary, Shape: ShapeI8x16, Lowered: true},
	OpcodeVecF64x2Ceil:                 {Name: "f64x2.ceil", Category: CategoryUnary, Shape: ShapeF64x2},
	OpcodeVecF64x2Floor:                {Name: "f64x2.floor", Category: CategoryUnary, Shape: ShapeF64x2},
	OpcodeVecI8x16MinS:                 {Name: "i8x16.min_s", Category: CategoryBinary, Shape: ShapeI8x16, Signed: true},
	OpcodeVecI8x16MinU:                 {Name: "i8x16.min_u", Category: CategoryBinary, Shape: ShapeI8x16},
	OpcodeVecI8x16MaxS:                 {Name: "i8x16.max_s", Category: CategoryBinary, Shape: ShapeI8x16, Signed: true},
	OpcodeVecI8x16MaxU:                 {Name: "i8x16.max_u", Category: CategoryBinary, Shape: ShapeI8x16},
	OpcodeVecF64x2Trunc:                {Name: "f64x2.trunc", Category: CategoryUnary, Shape: ShapeF64x2},
	OpcodeVecI8x16AvgrU:                {Name: "i8x16.avgr_u", Category: CategoryBinary, Shape: ShapeI8x16, Lowered: true},
	OpcodeVecI16x8ExtaddPairwiseI8x16S: {Name: "i16x8.extadd_pairwise_i8x16_s", Category: CategoryUnary, Shape: ShapeI16x8, Signed: true, Lowered: true},
	OpcodeVecI16x8ExtaddPairwiseI8x16U: {Name: "i16x8.extadd_pairwise_i8x16_u", Category: CategoryUnary, Shape: ShapeI16x8, Lowered: true},
	OpcodeVecI32x4ExtaddPairwiseI16x8S: {Name: "i32x4.extadd_pairwise_i16x8_s", Category: CategoryUnary, Shape: ShapeI32x4, Signed: true, Lowered: true},
	OpcodeVecI32x4ExtaddPairwiseI16x8U: {Name: "i32x4.extadd_pairwise_i16x8_u", Category: CategoryUnary, Shape: ShapeI32x4, Lowered: true},
	OpcodeVecI16x8Abs:                  {Name: "i16x8.abs", Category: CategoryUnary, Shape: ShapeI16x8},
	OpcodeVecI16x8Neg:                  {Name: "i16x8.neg", Category: CategoryUnary, Shape: ShapeI16x8},
	OpcodeVecI16x8Q15mulrSatS:          {Name: "i16x8.q15mulr_sat_s", Category: CategoryBinary, Shape: ShapeI16x8, Signed: true, Lowered: true},
	OpcodeVecI16x8AllTrue:              {Name: "i16x8.all_true", Category: CategoryReduce, Shape: ShapeI16x8, Lowered: true},
	OpcodeVecI16x8Bitmask:              {Name: "i16x8.bitmask", Category: CategoryReduce, Shape: ShapeI16x8, Lowered: true},
	OpcodeVecI16x8NarrowI32x4S:         {Name: "i16x8.narrow_i32x4_s", Category: CategoryBinary, Shape: ShapeI16x8, Signed: true},
	OpcodeVecI16x8NarrowI32x4U:         {Name: "i16x8.narrow_i32x4_u", Category: CategoryBinary, Shape: ShapeI16x8},
	OpcodeVecI16x8ExtendLowI8x16S:      {Name: "i16x8.extend_low_i8x16_s", Category: CategoryUnary, Shape: ShapeI16x8, Signed: true},
	OpcodeVecI16x8ExtendHighI8x16S:     {Name: "i16x8.extend_high_i8x16_s", Category: CategoryUnary, Shape: ShapeI16x8, Signed: true, High: true},
	OpcodeVecI16x8ExtendLowI8x16U:      {Name: "i16x8.extend_low_i8x16_u", Category: CategoryUnary, Shape: ShapeI16x8},
	OpcodeVecI16x8ExtendHighI8x16U:     {Name: "i16x8.extend_high_i8x16_u", Category: CategoryUnary, Shape: ShapeI16x8, High: true},
	OpcodeVecI16x8Shl:                  {Name: "i16x8.shl", Category: CategoryShift, Shape: ShapeI16x8},
	OpcodeVecI16x8ShrS:                 {Name: "i16x8.shr_s", Category: CategoryShift, Shape: ShapeI16x8, Signed: true},
	OpcodeVecI16x8ShrU:                 {Name: "i16x8.shr_u", Category: CategoryShift, Shape: ShapeI16x8},
	OpcodeVecI16x8Add:                  {Name: "i16x8.add", Category: CategoryBinary, Shape: ShapeI16x8},
	OpcodeVecI16x8AddSatS:              {Name: "i16x8.add_sat_s", Category: CategoryBinary, Shape: ShapeI16x8, Signed: true, Lowered: true},
	OpcodeVecI16x8AddSatU:              {Name: "i16x8.add_sat_u", Category: CategoryBinary, Shape: ShapeI16x8, Lowered: true},
	OpcodeVecI16x8Sub:                  {Name: "i16x8.sub", Category: CategoryBinary, Shape: ShapeI16x8},
	OpcodeVecI16x8SubSatS:              {Name: "i16x8.sub_sat_s", Category: CategoryBinary, Shape: ShapeI16x8, Signed: true, Lowered: true},
	OpcodeVecI16x8SubSatU:              {Name: "i16x8.sub_sat_u", Category: CategoryBinary, Shape: ShapeI16x8, Lowered: true},
	OpcodeVecF64x2Nearest:              {Name: "f64x2.nearest", Category: CategoryUnary, Shape: ShapeF64x2},
	OpcodeVecI16x8Mul:                  {Name: "i16x8.mul", Category: CategoryBinary, Shape: ShapeI16x8},
	OpcodeVecI16x8MinS:                 {Name: "i16x8.min_s", Category: CategoryBinary, Shape: ShapeI16x8, Signed: true},
	OpcodeVecI16x8MinU:                 {Name: "i16x8.min_u", Category: CategoryBinary, Shape: ShapeI16x8},
	OpcodeVecI16x8MaxS:                 {Name: "i16x8.max_s", Category: CategoryBinary, Shape: ShapeI16x8, Signed: true},
	OpcodeVecI16x8MaxU:                 {Name: "i16x8.max_u", Category: CategoryBinary, Shape: ShapeI16x8},
	OpcodeVecI16x8AvgrU:                {Name: "i16x8.avgr_u", Category: CategoryBinary, Shape: ShapeI16x8, Lowered: true},
	OpcodeVecI16x8ExtmulLowI8x16S:      {Name: "i16x8.extmul_low_i8x16_s", Category: CategoryBinary, Shape: ShapeI16x8, Signed: true, Lowered: true},
	OpcodeVecI16x8ExtmulHighI8x16S:     {Name: "i16x8.extmul_high_i8x16_s", Category: CategoryBinary, Shape: ShapeI16x8, Signed: true, High: true, Lowered: true},
	OpcodeVecI16x8ExtmulLowI8x16U:      {Name: "i16x8.extmul_low_i8x16_u", Category: CategoryBinary, Shape: ShapeI16x8, Lowered: true},
	OpcodeVecI16x8ExtmulHighI8x16U:     {Name: "i16x8.extmul_high_i8x16_u", Category: CategoryBinary, Shape: ShapeI16x8, High: true, Lowered: true},
	OpcodeVecI32x4Abs:                  {Name: "i32x4.abs", Category: CategoryUnary, Shape: ShapeI32x4},
	OpcodeVecI32x4Neg:                  {Name: "i32x4.neg", Category: CategoryUnary, Shape: ShapeI32x4},
	OpcodeVecI32x4AllTrue:              {Name: "i32x4.all_true", Category: CategoryReduce, Shape: ShapeI32x4, Lowered: true},
	OpcodeVecI32x4Bitmask:              {Name: "i32x4.bitmask", Category: CategoryReduce, Shape: ShapeI32x4, Lowered: true},
	OpcodeVecI32x4ExtendLowI16x8S:      {Name: "i32x4.extend_low_i16x8_s", Category: CategoryUnary, Shape: ShapeI32x4, Signed: true},
	OpcodeVecI32x4ExtendHighI16x8S:     {Name: "i32x4.extend_high_i16x8_s", Category: CategoryUnary, Shape: ShapeI32x4, Signed: true, High: true},
	OpcodeVecI32x4ExtendLowI16x8U:      {Name: "i32x4.extend_low_i16x8_u", Category: CategoryUnary, Shape: ShapeI32x4},
	OpcodeVecI32x4ExtendHighI16x8U:     {Name: "i32x4.extend_high_i16x8_u", Category: CategoryUnary, Shape: ShapeI32x4, High: true},
	OpcodeVecI32x4Shl:                  {Name: "i32x4.shl", Category: CategoryShift, Shape: ShapeI32x4},
	OpcodeVecI32x4ShrS:                 {Name: "i32x4.shr_s", Category: CategoryShift, Shape: ShapeI32x4, Signed: true},
	OpcodeVecI32x4ShrU:                 {Name: "i32x4.shr_u", Category: CategoryShift, Shape: ShapeI32x4},
	OpcodeVecI32x4Add:                  {Name: "i32x4.add", Category: CategoryBinary, Shape: ShapeI32x4},
	OpcodeVecI32x4Sub:                  {Name: "i32x4.sub", Category: CategoryBinary, Shape: ShapeI32x4},
	OpcodeVecI32x4Mul:                  {Name: "i32x4.mul", Category: CategoryBinary, Shape: ShapeI32x4},
	OpcodeVecI32x4MinS:                 {Name: "i32x4.min_s", Category: CategoryBinary, Shape: ShapeI32x4, Signed: true},
	OpcodeVecI32x4MinU:                 {Name: "i32x4.min_u", Category: CategoryBinary, Shape: ShapeI32x4},
	OpcodeVecI32x4MaxS:                 {Name: "i32x4.max_s", Category: CategoryBinary, Shape: ShapeI32x4, Signed: true},
	OpcodeVecI32x4MaxU:                 {Name: "i32x4.max_u", Category: CategoryBinary, Shape: ShapeI32x4},
	OpcodeVecI32x4DotI16x8S:            {Name: "i32x4.dot_i16x8_s", Category: CategoryBinary, Shape: ShapeI32x4, Signed: true, Lowered: true},
	OpcodeVecI32x4ExtmulLowI16x8S:      {Name: "i32x4.extmul_low_i16x8_s", Category: CategoryBinary, Shape: ShapeI32x4, Signed: true, Lowered: true},
	OpcodeVecI32x4ExtmulHighI16x8S:     {Name: "i32x4.extmul_high_i16x8_s", Category: CategoryBinary, Shape: ShapeI32x4, Signed: true, High: true, Lowered: true},
	OpcodeVecI32x4ExtmulLowI16x8U:      {Name: "i32x4.extmul_low_i16x8_u", Category: CategoryBinary, Shape: ShapeI32x4, Lowered: true},
	OpcodeVecI32x4ExtmulHighI16x8U:     {Name: "i32x4.extmul_high_i16x8_u", Category: CategoryBinary, Shape: ShapeI32x4, High: true, Lowered: true},
	OpcodeVecI64x2Abs:                  {Name: "i64x2.abs", Category: CategoryUnary, Shape: ShapeI64x2},
	OpcodeVecI64x2Neg:                  {Name: "i64x2.neg", Category: CategoryUnary, Shape: ShapeI64x2},
	OpcodeVecI64x2AllTrue:              {Name: "i64x2.all_true", Category: CategoryReduce, Shape: ShapeI64x2, Lowered: true},
	OpcodeVecI64x2Bitmask:              {Name: "i64x2.bitmask", Category: CategoryReduce, Shape: ShapeI64x2, Lowered: true},
	OpcodeVecI64x2ExtendLowI32x4S:      {Name: "i64x2.extend_low_i32x4_s", Category: CategoryUnary, Shape: ShapeI64x2, Signed: true},
	OpcodeVecI64x2ExtendHighI32x4S:     {Name: "i64x2.extend_high_i32x4_s", Category: CategoryUnary, Shape: ShapeI64x2, Signed: true, High: true},
	OpcodeVecI64x2ExtendLowI32x4U:      {Name: "i64x2.extend_low_i32x4_u", Category: CategoryUnary, Shape: ShapeI64x2},
	OpcodeVecI64x2ExtendHighI32x4U:     {Name: "i64x2.extend_high_i32x4_u", Category: CategoryUnary, Shape: ShapeI64x2, High: true},
	OpcodeVecI64x2Shl:                  {Name: "i64x2.shl", Category: CategoryShift, Shape: ShapeI64x2},
	OpcodeVecI64x2ShrS:                 {Name: "i64x2.shr_s", Category: CategoryShift, Shape: ShapeI64x2, Signed: true},
	OpcodeVecI64x2ShrU:                 {Name: "i64x2.shr_u", Category: CategoryShift, Shape: ShapeI64x2},
	OpcodeVecI64x2Add:                  {Name: "i64x2.add", Category: CategoryBinary, Shape: ShapeI64x2},
	OpcodeVecI64x2Sub:                  {Name: "i64x2.sub", Category: CategoryBinary, Shape: ShapeI64x2},
	OpcodeVecI64x2Mul:                  {Name: "i64x2.mul", Category: CategoryBinary, Shape: ShapeI64x2},
	OpcodeVecI64x2Eq:                   {Name: "i64x2.eq", Category: CategoryBinary, Shape: ShapeI64x2},
	OpcodeVecI64x2Ne:                   {Name: "i64x2.ne", Category: CategoryCompareNot, Shape: ShapeI64x2, Lowered: true},
	OpcodeVecI64x2LtS:                  {Name: "i64x2.lt_s", Category: CategoryBinary, Shape: ShapeI64x2, Signed: true},
	OpcodeVecI64x2GtS:                  {Name: "i64x2.gt_s", Category: CategoryBinary, Shape: ShapeI64x2, Signed: true},
	OpcodeVecI64x2LeS:                  {Name: "i64x2.le_s", Category: CategoryBinary, Shape: ShapeI64x2, Signed: true},
	OpcodeVecI64x2GeS:                  {Name: "i64x2.ge_s", Category: CategoryBinary, Shape: ShapeI64x2, Signed: true},
	OpcodeVecI64x2ExtmulLowI32x4S:      {Name: "i64x2.extmul_low_i32x4_s", Category: CategoryBinary, Shape: ShapeI64x2, Signed: true, Lowered: true},
	OpcodeVecI64x2ExtmulHighI32x4S:     {Name: "i64x2.extmul_high_i32x4_s", Category: CategoryBinary, Shape: ShapeI64x2, Signed: true, High: true, Lowered: true},
	OpcodeVecI64x2ExtmulLowI32x4U:      {Name: "i64x2.extmul_low_i32x4_u", Category: CategoryBinary, Shape: ShapeI64x2, Lowered: true},
	OpcodeVecI64x2ExtmulHighI32x4U:     {Name: "i64x2.extmul_high_i32x4_u", Category: CategoryBinary, Shape: ShapeI64x2, High: true, Lowered: true},
	OpcodeVecF32x4Abs:                  {Name: "f32x4.abs", Category: CategoryUnary, Shape: ShapeF32x4},
	OpcodeVecF32x4Neg:                  {Name: "f32x4.neg", Category: CategoryUnary, Shape: ShapeF32x4},
	OpcodeVecF32x4Sqrt:                 {Name: "f32x4.sqrt", Category: CategoryUnary, Shape: ShapeF32x4},
	OpcodeVecF32x4Add:                  {Name: "f32x4.add", Category: CategoryBinary, Shape: ShapeF32x4},
	OpcodeVecF32x4Sub:                  {Name: "f32x4.sub", Category: CategoryBinary, Shape: ShapeF32x4},
	OpcodeVecF32x4Mul:                  {Name: "f32x4.mul", Category: CategoryBinary, Shape: ShapeF32x4},
	OpcodeVecF32x4Div:                  {Name: "f32x4.div", Category: CategoryBinary, Shape: ShapeF32x4},
	OpcodeVecF32x4Min:                  {Name: "f32x4.min", Category: CategoryBinary, Shape: ShapeF32x4},
	OpcodeVecF32x4Max:                  {Name: "f32x4.max", Category: CategoryBinary, Shape: ShapeF32x4},
	OpcodeVecF32x4Pmin:                 {Name: "f32x4.pmin", Category: CategoryBinary, Shape: ShapeF32x4, Lowered: true},
	OpcodeVecF32x4Pmax:                 {Name: "f32x4.pmax", Category: CategoryBinary, Shape: ShapeF32x4, Lowered: true},
	OpcodeVecF64x2Abs:                  {Name: "f64x2.abs", Category: CategoryUnary, Shape: ShapeF64x2},
	OpcodeVecF64x2Neg:                  {Name: "f64x2.neg", Category: CategoryUnary, Shape: ShapeF64x2},
	OpcodeVecF64x2Sqrt:                 {Name: "f64x2.sqrt", Category: CategoryUnary, Shape: ShapeF64x2},
	OpcodeVecF64x2Add:                  {Name: "f64x2.add", Category: CategoryBinary, Shape: ShapeF64x2},
	OpcodeVecF64x2Sub:                  {Name: "f64x2.sub", Category: CategoryBinary, Shape: ShapeF64x2},
	OpcodeVecF64x2Mul:                  {Name: "f64x2.mul", Category: CategoryBinary, Shape: ShapeF64x2},
	OpcodeVecF64x2Div:                  {Name: "f64x2.div", Category: CategoryBinary, Shape: ShapeF64x2},
	OpcodeVecF64x2Min:                  {Name: "f64x2.min", Category: CategoryBinary, Shape: ShapeF64x2},
	OpcodeVecF64x2Max:                  {Name: "f64x2.max", Category: CategoryBinary, Shape: ShapeF64x2},
	OpcodeVecF64x2Pmin:                 {Name: "f64x2.pmin", Category: CategoryBinary, Shape: ShapeF64x2, Lowered: true},
	OpcodeVecF64x2Pmax:                 {Name: "f64x2.pmax", Category: CategoryBinary, Shape: ShapeF64x2, Lowered: true},
	OpcodeVecI32x4TruncSatF32x4S:       {Name: "i32x4.trunc_sat_f32x4_s", Category: CategoryUnary, Shape: ShapeI32x4, Signed: true},
	OpcodeVecI32x4TruncSatF32x4U:       {Name: "i32x4.trunc_sat_f32x4_u", Category: CategoryUnary, Shape: ShapeI32x4},
	OpcodeVecF32x4ConvertI32x4S:        {Name: "f32x4.convert_i32x4_s", Category: CategoryUnary, Shape: ShapeF32x4, Signed: true},
	OpcodeVecF32x4ConvertI32x4U:        {Name: "f32x4.convert_i32x4_u", Category: CategoryUnary, Shape: ShapeF32x4},
	OpcodeVecI32x4TruncSatF64x2SZero:   {Name: "i32x4.trunc_sat_f64x2_s_zero", Category: CategoryUnary, Shape: ShapeI32x4, Signed: true, Lowered: true},
	OpcodeVecI32x4TruncSatF64x2UZero:   {Name: "i32x4.trunc_sat_f64x2_u_zero", Category: CategoryUnary, Shape: ShapeI32x4, Lowered: true},
	OpcodeVecF64x2ConvertLowI32x4S:     {Name: "f64x2.convert_low_i32x4_s", Category: CategoryUnary, Shape: ShapeF64x2, Signed: true},
	OpcodeVecF64x2ConvertLowI32x4U:     {Name: "f64x2.convert_low_i32x4_u", Category: CategoryUnary, Shape: ShapeF64x2},
}
