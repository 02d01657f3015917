package calc

// KeyAction maps a key name to its action. Names are the characters typed
// plus the gio names of the editing keys.
func KeyAction(name string) (Action, bool) {
	switch name {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		return AppendToken{Kind: Number, Text: name}, true
	case "+", "-", "*", "/", "%", "^":
		return AppendToken{Kind: Operator, Text: " " + name + " "}, true
	case "(", ")":
		return AppendToken{Kind: Operator, Text: name}, true
	case "=", "Enter", "Return", "⏎", "⌤":
		return Commit{}, true
	case "Backspace", "Delete", "⌫", "⌦":
		return Backspace{}, true
	case "Escape", "⎋":
		return Clear{}, true
	}
	return nil, false
}
