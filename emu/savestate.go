package emu

import (
	"encoding/binary"
	"errors"
	"hash/crc32"

	"github.com/user-none/go-chip-z80"
	"github.com/user-none/tmsvdp/vdp"
)

const (
	stateMagic      = "tmsVDPState!"
	stateVersion    = 1
	stateHeaderSize = 19 // magic(12) + version(2) + model(1) + data CRC(4)
)

// SerializeSize returns the save state size for a machine with the given
// video chip.
func SerializeSize(model Model) int {
	vramSize := 0x4000
	if model == ModelV9938 {
		vramSize = 0x20000
	}
	return stateHeaderSize +
		z80.SerializeSize + // CPU state
		0x10000 + // Host RAM
		vramSize + // VRAM
		8 + // VDP registers
		1 + // bank
		2 + // addr
		3 + // addrLatch, writeLatch, readBuffer
		1 + // status
		8 + // clock
		3 + // irqPending, interruptsOn, ignoreMask
		4 + // irqCountdown
		4 // serviced
}

// Serialize creates a save state and returns it as a byte slice.
func (m *Machine) Serialize() ([]byte, error) {
	data := make([]byte, SerializeSize(m.vdp.model))

	copy(data[0:12], stateMagic)
	binary.LittleEndian.PutUint16(data[12:14], stateVersion)
	data[14] = uint8(m.vdp.model)

	offset := stateHeaderSize
	m.cpu.Serialize(data[offset:])
	offset += z80.SerializeSize

	offset += copy(data[offset:], m.ram[:])
	offset = m.serializeVDP(data, offset)
	m.serializeHost(data, offset)

	// Data CRC covers everything after the header
	binary.LittleEndian.PutUint32(data[15:19], crc32.ChecksumIEEE(data[stateHeaderSize:]))
	return data, nil
}

// Deserialize restores machine state from a save state byte slice. The
// port trace and timing violation count are not part of the state.
func (m *Machine) Deserialize(data []byte) error {
	if err := m.VerifyState(data); err != nil {
		return err
	}

	offset := stateHeaderSize
	m.cpu.Deserialize(data[offset:])
	offset += z80.SerializeSize

	offset += copy(m.ram[:], data[offset:offset+len(m.ram)])
	offset = m.deserializeVDP(data, offset)
	m.deserializeHost(data, offset)
	m.inISR = false
	return nil
}

// VerifyState checks if a save state is valid without loading it.
func (m *Machine) VerifyState(data []byte) error {
	if len(data) < stateHeaderSize {
		return errors.New("save state too short")
	}
	if string(data[0:12]) != stateMagic {
		return errors.New("invalid save state magic")
	}
	if binary.LittleEndian.Uint16(data[12:14]) > stateVersion {
		return errors.New("unsupported save state version")
	}
	if Model(data[14]) != m.vdp.model {
		return errors.New("save state is for a different video chip")
	}
	if len(data) < SerializeSize(m.vdp.model) {
		return errors.New("save state too short")
	}
	expectedCRC := binary.LittleEndian.Uint32(data[15:19])
	if expectedCRC != crc32.ChecksumIEEE(data[stateHeaderSize:]) {
		return errors.New("save state data is corrupted")
	}
	return nil
}

func (m *Machine) serializeVDP(data []byte, offset int) int {
	v := m.vdp
	offset += copy(data[offset:], v.vram)
	offset += copy(data[offset:], v.register[:])
	data[offset] = v.bank
	offset++
	binary.LittleEndian.PutUint16(data[offset:], v.addr)
	offset += 2
	data[offset] = v.addrLatch
	data[offset+1] = boolByte(v.writeLatch)
	data[offset+2] = v.readBuffer
	data[offset+3] = v.status
	return offset + 4
}

func (m *Machine) deserializeVDP(data []byte, offset int) int {
	v := m.vdp
	offset += copy(v.vram, data[offset:offset+len(v.vram)])
	offset += copy(v.register[:], data[offset:offset+len(v.register)])
	v.bank = data[offset]
	offset++
	v.addr = binary.LittleEndian.Uint16(data[offset:])
	offset += 2
	v.addrLatch = data[offset]
	v.writeLatch = data[offset+1] != 0
	v.readBuffer = data[offset+2]
	v.status = data[offset+3]
	return offset + 4
}

func (m *Machine) serializeHost(data []byte, offset int) int {
	binary.LittleEndian.PutUint64(data[offset:], uint64(m.io.clock))
	offset += 8
	data[offset] = boolByte(m.irqPending)
	data[offset+1] = boolByte(m.interruptsOn)
	data[offset+2] = boolByte(m.ignoreMask)
	offset += 3
	binary.LittleEndian.PutUint32(data[offset:], uint32(m.irqCountdown))
	offset += 4
	binary.LittleEndian.PutUint32(data[offset:], uint32(m.serviced))
	return offset + 4
}

func (m *Machine) deserializeHost(data []byte, offset int) int {
	m.io.clock = int64(binary.LittleEndian.Uint64(data[offset:]))
	m.io.lastAccess = m.io.clock - accessCost
	m.io.lastVRAM = m.io.clock - vdp.AccessInterval
	offset += 8
	m.irqPending = data[offset] != 0
	m.interruptsOn = data[offset+1] != 0
	m.ignoreMask = data[offset+2] != 0
	offset += 3
	m.irqCountdown = int(binary.LittleEndian.Uint32(data[offset:]))
	offset += 4
	m.serviced = int(binary.LittleEndian.Uint32(data[offset:]))
	return offset + 4
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
