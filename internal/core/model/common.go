package model

// Telemetry field names as published by the tank controller
const (
	FieldStopTime  = "Data_time_stop"
	FieldTimeStamp = "TimeStamp"
	FieldLevel     = "Level"
	FieldLevelAlt  = "level"
	FieldVolume    = "Volume"

	FieldTankName      = "Tank_name"
	FieldTankHigh      = "Tank_High"
	FieldSignalLow     = "Signal_Low"
	FieldSignalHigh    = "Signal_High"
	FieldSignalCurrent = "Signal_current"
	FieldFlowRate      = "flowrate"
	FieldPercent       = "percent"
	FieldOrder         = "Order"
	FieldOrderDate     = "Order_date"
	FieldOrderNumber   = "Order_number"
	FieldStartTime     = "Datatime_start"
	FieldStation       = "Station"
)

// HistorySlot is the fixed name of the persisted Batch-Out log
const HistorySlot = "batch_out_records"
