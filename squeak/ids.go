package squeak

import "strconv"

// ClassID is the one-byte tag that starts every serialized field.
type ClassID uint8

// Inline values.
const (
	ClassNull             ClassID = 1
	ClassTrue             ClassID = 2
	ClassFalse            ClassID = 3
	ClassSmallInt         ClassID = 4
	ClassSmallInt16       ClassID = 5
	ClassLargeIntPositive ClassID = 6
	ClassLargeIntNegative ClassID = 7
	ClassFloat            ClassID = 8
	ClassString           ClassID = 9
	ClassSymbol           ClassID = 10
	ClassBytes            ClassID = 11
	ClassSound            ClassID = 12
	ClassBitmap           ClassID = 13
	ClassUTF8             ClassID = 14
)

// Collections and fixed-arity builtins.
const (
	ClassArray              ClassID = 20
	ClassOrderedCollection  ClassID = 21
	ClassSet                ClassID = 22
	ClassIdentitySet        ClassID = 23
	ClassDictionary         ClassID = 24
	ClassIdentityDictionary ClassID = 25
	ClassColor              ClassID = 30
	ClassTranslucentColor   ClassID = 31
	ClassPoint              ClassID = 32
	ClassRectangle          ClassID = 33
	ClassForm               ClassID = 34
	ClassSqueak             ClassID = 35
)

// ClassObjectRef is a 1-based back reference into the decode table.
const ClassObjectRef ClassID = 99

// Versioned user-class records.
const (
	ClassMorph               ClassID = 100
	ClassAlignment           ClassID = 104
	ClassStaticString        ClassID = 105
	ClassUpdatingString      ClassID = 106
	ClassSampledSound        ClassID = 109
	ClassImageMorph          ClassID = 110
	ClassSprite              ClassID = 124
	ClassStage               ClassID = 125
	ClassWatcher             ClassID = 155
	ClassImageMedia          ClassID = 162
	ClassSoundMedia          ClassID = 164
	ClassMultilineString     ClassID = 171
	ClassWatcherReadoutFrame ClassID = 173
	ClassWatcherSlider       ClassID = 174
	ClassListWatcher         ClassID = 175
)

var classNames = map[ClassID]string{
	ClassNull:                "Null",
	ClassTrue:                "True",
	ClassFalse:               "False",
	ClassSmallInt:            "SmallInt",
	ClassSmallInt16:          "SmallInt16",
	ClassLargeIntPositive:    "LargeIntPositive",
	ClassLargeIntNegative:    "LargeIntNegative",
	ClassFloat:               "Float",
	ClassString:              "String",
	ClassSymbol:              "Symbol",
	ClassBytes:               "Bytes",
	ClassSound:               "Sound",
	ClassBitmap:              "Bitmap",
	ClassUTF8:                "UTF8",
	ClassArray:               "Array",
	ClassOrderedCollection:   "OrderedCollection",
	ClassSet:                 "Set",
	ClassIdentitySet:         "IdentitySet",
	ClassDictionary:          "Dictionary",
	ClassIdentityDictionary:  "IdentityDictionary",
	ClassColor:               "Color",
	ClassTranslucentColor:    "TranslucentColor",
	ClassPoint:               "Point",
	ClassRectangle:           "Rectangle",
	ClassForm:                "Form",
	ClassSqueak:              "ColorForm",
	ClassObjectRef:           "ObjectRef",
	ClassMorph:               "Morph",
	ClassAlignment:           "Alignment",
	ClassStaticString:        "StaticString",
	ClassUpdatingString:      "UpdatingString",
	ClassSampledSound:        "SampledSound",
	ClassImageMorph:          "ImageMorph",
	ClassSprite:              "Sprite",
	ClassStage:               "Stage",
	ClassWatcher:             "Watcher",
	ClassImageMedia:          "ImageMedia",
	ClassSoundMedia:          "SoundMedia",
	ClassMultilineString:     "MultilineString",
	ClassWatcherReadoutFrame: "WatcherReadoutFrame",
	ClassWatcherSlider:       "WatcherSlider",
	ClassListWatcher:         "ListWatcher",
}

func (c ClassID) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "Class" + strconv.Itoa(int(c))
}

// Known reports whether c has a name in the class table.
func (c ClassID) Known() bool {
	_, ok := classNames[c]
	return ok
}

// IsVersioned reports whether c is encoded as a versioned record header.
func (c ClassID) IsVersioned() bool {
	return c > ClassObjectRef
}
