package lib

import "fmt"

func RoomAvailabilityKey(roomId uint, from, to string) string {
	return fmt.Sprintf("room::%d:availability:%s:%s", roomId, from, to)
}

func RoomAvailabilityKeyPattern(roomId uint) string {
	return fmt.Sprintf("room::%d:availability:*", roomId)
}
