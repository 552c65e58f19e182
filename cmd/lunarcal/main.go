// Command lunarcal converts dates between the Gregorian and Chinese
// lunisolar calendars from the command line, using the embedded
// 1890-2100 reference table.
package main

func main() {
	Execute()
}
