// Package document reads and writes PEunion project documents (*.peu).
//
// A document is a UTF-8 XML file:
//
//	<PEunionProject>
//	  <Build>
//	    <OutputBinary>
//	      <Assembly Platform="0" Manifest="1" />
//	      <Icon Path="icons\app.ico" />
//	      <AssemblyInfo Title="" Product="" Copyright="" Version="" />
//	    </OutputBinary>
//	    <CodeGeneration Obfuscation="2" StringEncryption="1" StringLiteralEncryption="1" />
//	    <Startup DeleteZoneID="1" Melt="0" />
//	  </Build>
//	  <Items>
//	    <File Path="bin\setup.exe">
//	      <Modification Compress="1" Encrypt="1" Hidden="0" />
//	      <Dropping Name="setup.exe" DropLocation="0" />
//	      <Execution DropAction="1" Runas="0" CommandLine="" />
//	      <Antis Sandboxie="0" Wireshark="0" ProcessMonitor="0" Emulator="0" />
//	    </File>
//	    <Url Url="https://example.com/a.exe">...</Url>
//	    <MessageBox Title="" Text="" Buttons="0" Icon="64" />
//	  </Items>
//	</PEunionProject>
//
// Paths are stored relative to the document's directory and resolved to
// absolute paths on load. Booleans are stored as "1" and "0"; only "1" reads
// as true. Enums are stored as their integer ordinal. Every element and
// attribute shown above is required and an unknown item element fails the
// load with a *MalformedDocumentError.
package document
