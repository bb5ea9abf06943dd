package model

// Catalog is the stable set of BlockType command ids the Interpreter's
// Block Dispatch Table registers handlers for (spec.md §4.4). A real
// project-model loader (out of scope, spec.md §1) is what actually
// produces BlockType values at parse time; this catalog exists so the
// Interpreter, its tests, and the REPL's text parser all share the same
// stable ids and Insert shapes instead of re-deriving them ad hoc.

func bt(cmd string, shape Shape, inserts ...Insert) *BlockType {
	return &BlockType{Command: cmd, ShapeOf: shape, Inserts: inserts}
}

func num() Insert    { return NewInsert(InsertNumber, ShapeInsertNumber, false) }
func str() Insert    { return NewInsert(InsertString, ShapeInsertString, false) }
func boolIn() Insert { return NewInsert("", ShapeInsertBoolean, false) }
func body() Insert   { return Insert{ShapeOf: ShapeInsertStack, Unevaluated: true} }
func menu(opts ...string) Insert {
	return NewInsert(InsertReadonlyMenu, ShapeInsertMenu, false).WithOptions(opts)
}
func varIn() Insert   { return NewInsert(InsertVar, ShapeInsertString, false) }
func listIn() Insert  { return NewInsert(InsertList, ShapeInsertString, false) }
func soundIn() Insert { return NewInsert(InsertSound, ShapeInsertString, false) }
func spriteOrMouse() Insert {
	return NewInsert(InsertSpriteOrMouse, ShapeInsertMenu, false)
}
func spriteOrStage() Insert {
	return NewInsert(InsertSpriteOrStage, ShapeInsertMenu, false)
}
func touchingMenu() Insert { return NewInsert(InsertTouching, ShapeInsertMenu, false) }
func keyIn() Insert         { return NewInsert(InsertKey, ShapeInsertMenu, false) }
func colorIn() Insert       { return NewInsert(InsertColor, ShapeInsertNumber, false) }

// Hats (spec.md §4.3).
var (
	WhenGreenFlag  = bt("whenGreenFlag", ShapeHat)
	WhenKeyPressed = bt("whenKeyPressed", ShapeHat, keyIn())
	WhenClicked    = bt("whenClicked", ShapeHat)
	WhenIReceive   = bt("whenIReceive", ShapeHat, menu())
)

// Control.
var (
	WaitSecs         = bt("wait", ShapeStack, num())
	Forever          = bt("forever", ShapeCap, body())
	Repeat           = bt("repeat", ShapeStack, num(), body())
	If               = bt("if", ShapeStack, boolIn(), body())
	IfElse           = bt("ifElse", ShapeStack, boolIn(), body(), body())
	WaitUntil        = bt("waitUntil", ShapeStack, boolIn())
	RepeatUntil      = bt("repeatUntil", ShapeStack, boolIn(), body())
	Stop             = bt("stop", ShapeCap, menu("all", "this script", "other scripts in sprite"))
	Broadcast        = bt("broadcast", ShapeStack, menu())
	BroadcastAndWait = bt("broadcastAndWait", ShapeStack, menu())
)

// Motion.
var (
	Move              = bt("move", ShapeStack, num())
	TurnRight         = bt("turnRight", ShapeStack, num())
	TurnLeft          = bt("turnLeft", ShapeStack, num())
	PointInDirection  = bt("pointInDirection", ShapeStack, num())
	PointTowards      = bt("pointTowards", ShapeStack, spriteOrMouse())
	GoToXY            = bt("goToXY", ShapeStack, num(), num())
	GoTo              = bt("goTo", ShapeStack, spriteOrMouse())
	GlideSecsToXY     = bt("glideSecsToXY", ShapeStack, num(), num(), num())
	ChangeXBy         = bt("changeXBy", ShapeStack, num())
	ChangeYBy         = bt("changeYBy", ShapeStack, num())
	SetX              = bt("setX", ShapeStack, num())
	SetY              = bt("setY", ShapeStack, num())
	DirectionReporter = bt("direction", ShapeReporter)
	XPosition         = bt("xposition", ShapeReporter)
	YPosition         = bt("yposition", ShapeReporter)
)

// Looks.
var (
	SwitchCostumeTo    = bt("switchCostumeTo", ShapeStack, str())
	NextCostume        = bt("nextCostume", ShapeStack)
	Say                = bt("say", ShapeStack, str())
	SayForSecs         = bt("sayForSecs", ShapeStack, str(), num())
	Think              = bt("think", ShapeStack, str())
	ThinkForSecs       = bt("thinkForSecs", ShapeStack, str(), num())
	ChangeEffectBy     = bt("changeEffectBy", ShapeStack, menu("color", "fisheye", "whirl", "pixelate", "mosaic", "brightness", "ghost"), num())
	SetEffectTo        = bt("setEffectTo", ShapeStack, menu("color", "fisheye", "whirl", "pixelate", "mosaic", "brightness", "ghost"), num())
	ClearGraphicEffects = bt("clearGraphicEffects", ShapeStack)
	ChangeSizeBy       = bt("changeSizeBy", ShapeStack, num())
	SetSizeTo          = bt("setSizeTo", ShapeStack, num())
	Show               = bt("show", ShapeStack)
	Hide               = bt("hide", ShapeStack)
	GoToFront          = bt("goToFront", ShapeStack)
	GoBackLayers       = bt("goBackLayers", ShapeStack, num())
	CostumeNumber      = bt("costumeNumber", ShapeReporter)
	SizeReporter       = bt("sizeReporter", ShapeReporter)
)

// Sound.
var (
	PlaySound          = bt("playSound", ShapeStack, soundIn())
	PlaySoundUntilDone = bt("playSoundUntilDone", ShapeStack, soundIn())
	StopAllSounds      = bt("stopAllSounds", ShapeStack)
	PlayDrumForBeats   = bt("playDrumForBeats", ShapeStack, num(), num())
	RestForBeats       = bt("restForBeats", ShapeStack, num())
	PlayNoteForBeats   = bt("playNoteForBeats", ShapeStack, num(), num())
	SetInstrumentTo    = bt("setInstrumentTo", ShapeStack, num())
	ChangeVolumeBy     = bt("changeVolumeBy", ShapeStack, num())
	SetVolumeTo        = bt("setVolumeTo", ShapeStack, num())
	VolumeReporter     = bt("volumeReporter", ShapeReporter)
)

// Pen.
var (
	PenClear         = bt("penClear", ShapeStack)
	PenDown          = bt("penDown", ShapeStack)
	PenUp            = bt("penUp", ShapeStack)
	Stamp            = bt("stamp", ShapeStack)
	SetPenColorTo    = bt("setPenColorTo", ShapeStack, num())
	ChangePenColorBy = bt("changePenColorBy", ShapeStack, num())
	SetPenShadeTo    = bt("setPenShadeTo", ShapeStack, num())
	ChangePenShadeBy = bt("changePenShadeBy", ShapeStack, num())
	SetPenHueTo      = bt("setPenHueTo", ShapeStack, num())
	ChangePenHueBy   = bt("changePenHueBy", ShapeStack, num())
	SetPenSizeTo     = bt("setPenSizeTo", ShapeStack, num())
	ChangePenSizeBy  = bt("changePenSizeBy", ShapeStack, num())
)

// Sensing.
var (
	Touching           = bt("touching", ShapeBoolean, touchingMenu())
	TouchingColor      = bt("touchingColor", ShapeBoolean, colorIn())
	ColorIsTouchingColor = bt("colorIsTouchingColor", ShapeBoolean, colorIn(), colorIn())
	AskAndWait         = bt("askAndWait", ShapeStack, str())
	AnswerReporter     = bt("answerReporter", ShapeReporter)
	KeyPressedReporter = bt("keyPressedReporter", ShapeBoolean, keyIn())
	MouseDownReporter  = bt("mouseDownReporter", ShapeBoolean)
	MouseXReporter     = bt("mouseXReporter", ShapeReporter)
	MouseYReporter     = bt("mouseYReporter", ShapeReporter)
	ResetTimer         = bt("resetTimer", ShapeStack)
	TimerReporter      = bt("timerReporter", ShapeReporter)
	DistanceTo         = bt("distanceTo", ShapeReporter, spriteOrMouse())
	AttributeOf        = bt("attributeOf", ShapeReporter, str(), spriteOrStage())
)

// Operators.
var (
	Add            = bt("add", ShapeReporter, num(), num())
	Subtract       = bt("subtract", ShapeReporter, num(), num())
	Multiply       = bt("multiply", ShapeReporter, num(), num())
	Divide         = bt("divide", ShapeReporter, num(), num())
	Mod            = bt("mod", ShapeReporter, num(), num())
	Round          = bt("round", ShapeReporter, num())
	LessThan       = bt("lessThan", ShapeBoolean, num(), num())
	Equals         = bt("equals", ShapeBoolean, num(), num())
	GreaterThan    = bt("greaterThan", ShapeBoolean, num(), num())
	And            = bt("and", ShapeBoolean, boolIn(), boolIn())
	Or             = bt("or", ShapeBoolean, boolIn(), boolIn())
	Not            = bt("not", ShapeBoolean, boolIn())
	PickRandom     = bt("pickRandom", ShapeReporter, num(), num())
	Join           = bt("join", ShapeReporter, str(), str())
	LetterOf       = bt("letterOf", ShapeReporter, num(), str())
	StringLength   = bt("stringLength", ShapeReporter, str())
	ComputeFunction = bt("computeFunction", ShapeReporter, menu("abs", "floor", "ceiling", "sqrt", "sin", "cos", "tan", "asin", "acos", "atan", "ln", "log", "e ^", "10 ^"), num())
)

// Variables.
var (
	VariableReporter = bt("variableReporter", ShapeReporter, varIn())
	SetVarTo         = bt("setVarTo", ShapeStack, varIn(), str())
	ChangeVarBy      = bt("changeVarBy", ShapeStack, varIn(), num())
	ShowVariable     = bt("showVariable", ShapeStack, varIn())
	HideVariable     = bt("hideVariable", ShapeStack, varIn())
)

// Lists.
var (
	GetList             = bt("getList", ShapeReporter, listIn())
	AddToList           = bt("addToList", ShapeStack, str(), listIn())
	DeleteOfList        = bt("deleteOfList", ShapeStack, str(), listIn())
	InsertAtOfList      = bt("insertAtOfList", ShapeStack, str(), str(), listIn())
	ReplaceItemOfList   = bt("replaceItemOfList", ShapeStack, str(), listIn(), str())
	ItemOfList          = bt("itemOfList", ShapeReporter, str(), listIn())
	LengthOfList        = bt("lengthOfList", ShapeReporter, listIn())
	ListContainsItem    = bt("listContainsItem", ShapeBoolean, listIn(), str())
	CountOfItemInList   = bt("countOfItemInList", ShapeReporter, listIn(), str())
)

// all is every catalog BlockType, built once at package init. It backs
// Lookup, the table the REPL's text parser (spec.md §6.1 "text.parse")
// resolves command names against.
var all = []*BlockType{
	WhenGreenFlag, WhenKeyPressed, WhenClicked, WhenIReceive,
	WaitSecs, Forever, Repeat, If, IfElse, WaitUntil, RepeatUntil, Stop, Broadcast, BroadcastAndWait,
	Move, TurnRight, TurnLeft, PointInDirection, PointTowards, GoToXY, GoTo, GlideSecsToXY,
	ChangeXBy, ChangeYBy, SetX, SetY, DirectionReporter, XPosition, YPosition,
	SwitchCostumeTo, NextCostume, Say, SayForSecs, Think, ThinkForSecs, ChangeEffectBy, SetEffectTo,
	ClearGraphicEffects, ChangeSizeBy, SetSizeTo, Show, Hide, GoToFront, GoBackLayers, CostumeNumber, SizeReporter,
	PlaySound, PlaySoundUntilDone, StopAllSounds, PlayDrumForBeats, RestForBeats, PlayNoteForBeats,
	SetInstrumentTo, ChangeVolumeBy, SetVolumeTo, VolumeReporter,
	PenClear, PenDown, PenUp, Stamp, SetPenColorTo, ChangePenColorBy, SetPenShadeTo, ChangePenShadeBy,
	SetPenHueTo, ChangePenHueBy, SetPenSizeTo, ChangePenSizeBy,
	Touching, TouchingColor, ColorIsTouchingColor, AskAndWait, AnswerReporter, KeyPressedReporter,
	MouseDownReporter, MouseXReporter, MouseYReporter, ResetTimer, TimerReporter, DistanceTo, AttributeOf,
	Add, Subtract, Multiply, Divide, Mod, Round, LessThan, Equals, GreaterThan, And, Or, Not,
	PickRandom, Join, LetterOf, StringLength, ComputeFunction,
	VariableReporter, SetVarTo, ChangeVarBy, ShowVariable, HideVariable,
	GetList, AddToList, DeleteOfList, InsertAtOfList, ReplaceItemOfList, ItemOfList, LengthOfList,
	ListContainsItem, CountOfItemInList,
}

// All returns every catalog BlockType (spec.md §6.1's project-model
// contract exposes no single enumerator, but the REPL needs one to
// resolve free-standing command text, so the catalog provides it).
func All() []*BlockType { return all }

// Lookup resolves cmd against every catalog BlockType's HasCommand
// (primary command or alias), mirroring spec.md §6.1's
// "BlockType.get(command)".
func Lookup(cmd string) *BlockType {
	for _, t := range all {
		if t.HasCommand(cmd) {
			return t
		}
	}
	return nil
}
